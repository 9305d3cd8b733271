package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saraevns/group-expenses/internal/models"
)

// CreateGroup создает группу, вставляет создателя первым администратором
// и сохраняет пользовательские категории. Все в одной транзакции.
func (s *Storage) CreateGroup(ctx context.Context, name, creatorUID string, categories []string) (*models.Group, error) {
	const op = "storage.CreateGroup"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	group := &models.Group{
		Name:             name,
		CreatedBy:        creatorUID,
		CustomCategories: categories,
	}
	query := `INSERT INTO groups (name, created_by)
			  VALUES ($1, $2)
			  RETURNING uid, created_at`
	if err = tx.QueryRowContext(ctx, query, name, creatorUID).Scan(&group.UID, &group.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO group_members (group_id, user_id, role)
			 VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, query, group.UID, creatorUID, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	group.Members = []models.Member{{UserID: creatorUID, Role: models.RoleAdmin}}

	query = `INSERT INTO group_categories (group_id, name)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`
	for _, category := range categories {
		if _, err = tx.ExecContext(ctx, query, group.UID, category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return group, nil
}

// GetGroup возвращает группу по UID вместе с участниками (включая их имена)
// и пользовательскими категориями.
func (s *Storage) GetGroup(ctx context.Context, groupUID string) (*models.Group, error) {
	const op = "storage.GetGroup"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	group := &models.Group{}
	query := `SELECT uid, name, created_by, created_at
			  FROM groups
			  WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, groupUID)
	if err := row.Scan(&group.UID, &group.Name, &group.CreatedBy, &group.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	members, err := s.listMembers(ctx, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	group.Members = members

	categories, err := s.listCategories(ctx, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	group.CustomCategories = categories

	return group, nil
}

// ListGroupsForUser возвращает все группы, в которых состоит пользователь,
// от новых к старым.
func (s *Storage) ListGroupsForUser(ctx context.Context, userUID string) ([]*models.Group, error) {
	const op = "storage.ListGroupsForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT g.uid, g.name, g.created_by, g.created_at
			  FROM groups g
			  JOIN group_members gm ON gm.group_id = g.uid
			  WHERE gm.user_id = $1
			  ORDER BY g.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Group
	for rows.Next() {
		var g models.Group
		if err = rows.Scan(&g.UID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, g := range result {
		if g.Members, err = s.listMembers(ctx, g.UID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if g.CustomCategories, err = s.listCategories(ctx, g.UID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return result, nil
}

// AddMember добавляет участника в группу и возвращает количество вставленных строк.
// Повторное добавление того же пользователя дает 0 строк.
func (s *Storage) AddMember(ctx context.Context, groupUID, userUID string, role models.Role) (int, error) {
	const op = "storage.AddMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO group_members (group_id, user_id, role)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (group_id, user_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, groupUID, userUID, role)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateMemberRole меняет роль участника и возвращает количество измененных строк.
func (s *Storage) UpdateMemberRole(ctx context.Context, groupUID, userUID string, role models.Role) (int, error) {
	const op = "storage.UpdateMemberRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE group_members
			  SET role = $1
			  WHERE group_id = $2 AND user_id = $3`
	result, err := s.DB.ExecContext(ctx, query, role, groupUID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMemberKeepAdmin удаляет участника из группы условным DELETE:
// администратор удаляется только если он не последний админ группы.
// Перед удалением строка группы блокируется FOR UPDATE, поэтому
// параллельные удаления по одной группе выполняются последовательно
// и подсчет админов видит результат предыдущего удаления.
// Возвращает количество удаленных строк.
func (s *Storage) RemoveMemberKeepAdmin(ctx context.Context, groupUID, userUID string) (int, error) {
	const op = "storage.RemoveMemberKeepAdmin"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var uid string
	query := `SELECT uid FROM groups WHERE uid = $1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, query, groupUID).Scan(&uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `DELETE FROM group_members gm
			 WHERE gm.group_id = $1 AND gm.user_id = $2
			   AND (gm.role <> 'admin'
			        OR (SELECT COUNT(*) FROM group_members
			            WHERE group_id = $1 AND role = 'admin') > 1)`
	result, err := tx.ExecContext(ctx, query, groupUID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AddCategory добавляет пользовательскую категорию группы.
// Точный повтор имени дает 0 строк.
func (s *Storage) AddCategory(ctx context.Context, groupUID, name string) (int, error) {
	const op = "storage.AddCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO group_categories (group_id, name)
			  VALUES ($1, $2)
			  ON CONFLICT (group_id, name) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, groupUID, name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

func (s *Storage) listMembers(ctx context.Context, groupUID string) ([]models.Member, error) {
	query := `SELECT gm.user_id, gm.role, u.full_name
			  FROM group_members gm
			  JOIN users u ON u.uid = gm.user_id
			  WHERE gm.group_id = $1`
	rows, err := s.DB.QueryContext(ctx, query, groupUID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err = rows.Scan(&m.UserID, &m.Role, &m.FullName); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Storage) listCategories(ctx context.Context, groupUID string) ([]string, error) {
	// Порядок добавления сохраняется, чтобы объединенный список категорий был стабильным.
	query := `SELECT name
			  FROM group_categories
			  WHERE group_id = $1
			  ORDER BY created_at, name`
	rows, err := s.DB.QueryContext(ctx, query, groupUID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}
		categories = append(categories, name)
	}
	return categories, rows.Err()
}
