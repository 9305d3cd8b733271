package repository

import (
	"context"
	"fmt"

	"github.com/saraevns/group-expenses/internal/models"
)

// CreateExpense вставляет новую запись о расходе и возвращает её с UID и датой создания.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (group_id, created_by, title, amount, category, description, spent_on)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		expense.GroupID, expense.CreatedBy, expense.Title, expense.Amount,
		expense.Category, expense.Description, expense.SpentOn).Scan(&expense.UID, &expense.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &expense, nil
}

// ListExpensesByGroup возвращает страницу расходов группы, отсортированную по дате.
// sortOrder = -1 — от новых к старым, 1 — от старых к новым. Дата создания записи
// служит вторичным ключом сортировки для детерминированной пагинации.
func (s *Storage) ListExpensesByGroup(ctx context.Context, groupUID string, limit, offset, sortOrder int) ([]models.Expense, error) {
	const op = "storage.ListExpensesByGroup"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	direction := "DESC"
	if sortOrder == 1 {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT uid, group_id, created_by, title, amount, category, description, spent_on, created_at
			  FROM expenses
			  WHERE group_id = $1
			  ORDER BY spent_on %s, created_at %s
			  LIMIT $2 OFFSET $3`, direction, direction)
	rows, err := s.DB.QueryContext(ctx, query, groupUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Expense
	for rows.Next() {
		var item models.Expense
		if err = rows.Scan(&item.UID, &item.GroupID, &item.CreatedBy, &item.Title, &item.Amount,
			&item.Category, &item.Description, &item.SpentOn, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountExpensesByGroup возвращает общее количество расходов группы.
func (s *Storage) CountExpensesByGroup(ctx context.Context, groupUID string) (int, error) {
	const op = "storage.CountExpensesByGroup"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, groupUID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// StatsByGroup агрегирует расходы группы: общая сумма, разбивка по категориям
// и участникам (по убыванию сумм) и по месяцам (в хронологическом порядке).
// Суммы возвращаются без округления, округление выполняет слой бизнес-логики.
func (s *Storage) StatsByGroup(ctx context.Context, groupUID string) (*models.Stats, error) {
	const op = "storage.StatsByGroup"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.Stats{}

	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE group_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, groupUID).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `SELECT category, SUM(amount) AS total
			 FROM expenses
			 WHERE group_id = $1
			 GROUP BY category
			 ORDER BY total DESC`
	rows, err := s.DB.QueryContext(ctx, query, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for rows.Next() {
		var item models.CategoryTotal
		if err = rows.Scan(&item.Category, &item.Total); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.ByCategory = append(stats.ByCategory, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_ = rows.Close()

	query = `SELECT created_by, SUM(amount) AS total
			 FROM expenses
			 WHERE group_id = $1
			 GROUP BY created_by
			 ORDER BY total DESC`
	rows, err = s.DB.QueryContext(ctx, query, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for rows.Next() {
		var item models.UserTotal
		if err = rows.Scan(&item.UserID, &item.Total); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.ByUser = append(stats.ByUser, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_ = rows.Close()

	query = `SELECT EXTRACT(YEAR FROM spent_on)::int AS year,
			        EXTRACT(MONTH FROM spent_on)::int AS month,
			        SUM(amount) AS total
			 FROM expenses
			 WHERE group_id = $1
			 GROUP BY year, month
			 ORDER BY year, month`
	rows, err = s.DB.QueryContext(ctx, query, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for rows.Next() {
		var item models.MonthTotal
		if err = rows.Scan(&item.Year, &item.Month, &item.Total); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.Monthly = append(stats.Monthly, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_ = rows.Close()

	return stats, nil
}
