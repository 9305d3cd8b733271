// Package expense содержит логику бизнес-уровня для работы с расходами
// и статистикой группы.
package expense

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/services/group"
)

var (
	// ErrInvalidCategory возвращается, когда категория расхода не входит
	// в список разрешенных для группы.
	ErrInvalidCategory = errors.New("category is not allowed for this group")
	// ErrInvalidDate возвращается при дате расхода не в формате YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)

// Значения пагинации по умолчанию и предел размера страницы.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ExpenseRepository описывает контракт для работы с расходами в базе данных.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, exp models.Expense) (*models.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupUID string, limit, offset, sortOrder int) ([]models.Expense, error)
	CountExpensesByGroup(ctx context.Context, groupUID string) (int, error)
	StatsByGroup(ctx context.Context, groupUID string) (*models.Stats, error)
}

// GroupGuard проверяет членство пользователя в группе.
type GroupGuard interface {
	RequireMember(ctx context.Context, groupUID, userUID string) (*models.Group, error)
}

// ExpenseService реализует создание, выборку и агрегацию расходов.
type ExpenseService struct {
	expenses ExpenseRepository
	guard    GroupGuard
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(expenses ExpenseRepository, guard GroupGuard) *ExpenseService {
	return &ExpenseService{expenses: expenses, guard: guard}
}

// Create добавляет расход в группу. Категория обязана входить в объединение
// предопределенных и пользовательских категорий группы, сравнение
// чувствительно к регистру.
func (s *ExpenseService) Create(ctx context.Context, groupUID, userUID string, req models.DummyExpense) (*models.Expense, error) {
	grp, err := s.guard.RequireMember(ctx, groupUID, userUID)
	if err != nil {
		return nil, err
	}
	allowed := group.AllowedCategories(grp)
	if !slices.Contains(allowed, req.Category) {
		return nil, fmt.Errorf("%w: allowed categories are %v", ErrInvalidCategory, allowed)
	}
	spentOn, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	exp := models.Expense{
		GroupID:     groupUID,
		CreatedBy:   userUID,
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		SpentOn:     spentOn,
	}
	return s.expenses.CreateExpense(ctx, exp)
}

// List возвращает страницу расходов группы, отсортированных по дате.
// sortOrder -1 — от новых к старым, 1 — от старых к новым.
func (s *ExpenseService) List(ctx context.Context, groupUID, userUID string, page, limit, sortOrder int) (*models.ExpensePage, error) {
	if _, err := s.guard.RequireMember(ctx, groupUID, userUID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if sortOrder != 1 {
		sortOrder = -1
	}
	total, err := s.expenses.CountExpensesByGroup(ctx, groupUID)
	if err != nil {
		return nil, err
	}
	items, err := s.expenses.ListExpensesByGroup(ctx, groupUID, limit, (page-1)*limit, sortOrder)
	if err != nil {
		return nil, err
	}
	return &models.ExpensePage{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// Stats возвращает агрегированную статистику расходов группы: общую сумму,
// разбивку по категориям, по участникам и по месяцам. Все суммы округляются
// до двух знаков после запятой.
func (s *ExpenseService) Stats(ctx context.Context, groupUID, userUID string) (*models.Stats, error) {
	if _, err := s.guard.RequireMember(ctx, groupUID, userUID); err != nil {
		return nil, err
	}
	stats, err := s.expenses.StatsByGroup(ctx, groupUID)
	if err != nil {
		return nil, err
	}
	stats.Total = round2(stats.Total)
	for i := range stats.ByCategory {
		stats.ByCategory[i].Total = round2(stats.ByCategory[i].Total)
	}
	for i := range stats.ByUser {
		stats.ByUser[i].Total = round2(stats.ByUser[i].Total)
	}
	for i := range stats.Monthly {
		stats.Monthly[i].Total = round2(stats.Monthly[i].Total)
	}
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
