package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/services/group"
)

type ExpenseRepositoryMock struct {
	mock.Mock
}

func (m *ExpenseRepositoryMock) CreateExpense(ctx context.Context, exp models.Expense) (*models.Expense, error) {
	args := m.Called(ctx, exp)
	e, _ := args.Get(0).(*models.Expense)
	return e, args.Error(1)
}

func (m *ExpenseRepositoryMock) ListExpensesByGroup(ctx context.Context, groupUID string, limit, offset, sortOrder int) ([]models.Expense, error) {
	args := m.Called(ctx, groupUID, limit, offset, sortOrder)
	e, _ := args.Get(0).([]models.Expense)
	return e, args.Error(1)
}

func (m *ExpenseRepositoryMock) CountExpensesByGroup(ctx context.Context, groupUID string) (int, error) {
	args := m.Called(ctx, groupUID)
	return args.Int(0), args.Error(1)
}

func (m *ExpenseRepositoryMock) StatsByGroup(ctx context.Context, groupUID string) (*models.Stats, error) {
	args := m.Called(ctx, groupUID)
	s, _ := args.Get(0).(*models.Stats)
	return s, args.Error(1)
}

type GroupGuardMock struct {
	mock.Mock
}

func (m *GroupGuardMock) RequireMember(ctx context.Context, groupUID, userUID string) (*models.Group, error) {
	args := m.Called(ctx, groupUID, userUID)
	g, _ := args.Get(0).(*models.Group)
	return g, args.Error(1)
}

func memberGroup() *models.Group {
	return &models.Group{
		UID:  "group-1",
		Name: "Flat 42",
		Members: []models.Member{
			{UserID: "user-1", Role: models.RoleAdmin},
		},
		CustomCategories: []string{"Sauna"},
	}
}

func TestExpenseService_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      models.DummyExpense
		guardErr error
		wantErr  error
	}{
		{
			name: "предопределенная категория",
			req:  models.DummyExpense{Title: "Milk", Amount: 3.5, Category: "Food & Groceries", Date: "2026-08-01"},
		},
		{
			name: "пользовательская категория",
			req:  models.DummyExpense{Title: "Steam room", Amount: 30, Category: "Sauna", Date: "2026-08-02"},
		},
		{
			name:    "неизвестная категория",
			req:     models.DummyExpense{Title: "Milk", Amount: 3.5, Category: "Groceries", Date: "2026-08-01"},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "сравнение категорий чувствительно к регистру",
			req:     models.DummyExpense{Title: "Milk", Amount: 3.5, Category: "food & groceries", Date: "2026-08-01"},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "некорректный формат даты",
			req:     models.DummyExpense{Title: "Milk", Amount: 3.5, Category: "Other", Date: "01-08-2026"},
			wantErr: ErrInvalidDate,
		},
		{
			name:     "пользователь не состоит в группе",
			req:      models.DummyExpense{Title: "Milk", Amount: 3.5, Category: "Other", Date: "2026-08-01"},
			guardErr: group.ErrNotMember,
			wantErr:  group.ErrNotMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ExpenseRepositoryMock)
			guard := new(GroupGuardMock)
			service := NewExpenseService(repo, guard)

			var grp *models.Group
			if tt.guardErr == nil {
				grp = memberGroup()
			}
			guard.On("RequireMember", mock.Anything, "group-1", "user-1").Return(grp, tt.guardErr).Once()
			repo.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e models.Expense) bool {
				return e.GroupID == "group-1" &&
					e.CreatedBy == "user-1" &&
					e.Category == tt.req.Category &&
					e.SpentOn.Format("2006-01-02") == tt.req.Date
			})).Return(&models.Expense{UID: "exp-1"}, nil).Maybe()

			exp, err := service.Create(context.Background(), "group-1", "user-1", tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, exp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "exp-1", exp.UID)
		})
	}
}

func TestExpenseService_List_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		sortOrder  int
		total      int
		wantPage   int
		wantLimit  int
		wantOffset int
		wantSort   int
		wantPages  int
	}{
		{
			name:       "вторая страница из 25 записей при лимите 20",
			page:       2,
			limit:      20,
			sortOrder:  -1,
			total:      25,
			wantPage:   2,
			wantLimit:  20,
			wantOffset: 20,
			wantSort:   -1,
			wantPages:  2,
		},
		{
			name:       "применяются значения по умолчанию",
			page:       0,
			limit:      0,
			sortOrder:  0,
			total:      5,
			wantPage:   1,
			wantLimit:  DefaultLimit,
			wantOffset: 0,
			wantSort:   -1,
			wantPages:  1,
		},
		{
			name:       "сортировка по возрастанию",
			page:       1,
			limit:      10,
			sortOrder:  1,
			total:      0,
			wantPage:   1,
			wantLimit:  10,
			wantOffset: 0,
			wantSort:   1,
			wantPages:  0,
		},
		{
			name:       "лимит ограничивается максимумом",
			page:       1,
			limit:      1000,
			sortOrder:  -1,
			total:      150,
			wantPage:   1,
			wantLimit:  MaxLimit,
			wantOffset: 0,
			wantSort:   -1,
			wantPages:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ExpenseRepositoryMock)
			guard := new(GroupGuardMock)
			service := NewExpenseService(repo, guard)

			guard.On("RequireMember", mock.Anything, "group-1", "user-1").Return(memberGroup(), nil).Once()
			repo.On("CountExpensesByGroup", mock.Anything, "group-1").Return(tt.total, nil).Once()
			repo.On("ListExpensesByGroup", mock.Anything, "group-1", tt.wantLimit, tt.wantOffset, tt.wantSort).
				Return([]models.Expense{}, nil).Once()

			page, err := service.List(context.Background(), "group-1", "user-1", tt.page, tt.limit, tt.sortOrder)
			require.NoError(t, err)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantPages, page.Pages)
			repo.AssertExpectations(t)
		})
	}
}

func TestExpenseService_Stats_Rounding(t *testing.T) {
	repo := new(ExpenseRepositoryMock)
	guard := new(GroupGuardMock)
	service := NewExpenseService(repo, guard)

	guard.On("RequireMember", mock.Anything, "group-1", "user-1").Return(memberGroup(), nil).Once()
	// Сумма 10.005 + 10.005 в float64 дает 20.009999999999998.
	repo.On("StatsByGroup", mock.Anything, "group-1").Return(&models.Stats{
		Total: 10.005 + 10.005,
		ByCategory: []models.CategoryTotal{
			{Category: "Food & Groceries", Total: 10.005 + 10.005},
		},
		ByUser: []models.UserTotal{
			{UserID: "user-1", Total: 10.005 + 10.005},
		},
		Monthly: []models.MonthTotal{
			{Year: 2026, Month: 8, Total: 10.005 + 10.005},
		},
	}, nil).Once()

	stats, err := service.Stats(context.Background(), "group-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20.01, stats.Total)
	assert.Equal(t, 20.01, stats.ByCategory[0].Total)
	assert.Equal(t, 20.01, stats.ByUser[0].Total)
	assert.Equal(t, 20.01, stats.Monthly[0].Total)
}

func TestExpenseService_Stats_EmptyGroup(t *testing.T) {
	repo := new(ExpenseRepositoryMock)
	guard := new(GroupGuardMock)
	service := NewExpenseService(repo, guard)

	guard.On("RequireMember", mock.Anything, "group-1", "user-1").Return(memberGroup(), nil).Once()
	repo.On("StatsByGroup", mock.Anything, "group-1").Return(&models.Stats{
		Total:      0,
		ByCategory: []models.CategoryTotal{},
		ByUser:     []models.UserTotal{},
		Monthly:    []models.MonthTotal{},
	}, nil).Once()

	stats, err := service.Stats(context.Background(), "group-1", "user-1")
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByCategory)
	assert.Empty(t, stats.ByUser)
	assert.Empty(t, stats.Monthly)
}

func TestExpenseService_Create_PreservesSpentOnDate(t *testing.T) {
	repo := new(ExpenseRepositoryMock)
	guard := new(GroupGuardMock)
	service := NewExpenseService(repo, guard)

	guard.On("RequireMember", mock.Anything, "group-1", "user-1").Return(memberGroup(), nil).Once()
	repo.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e models.Expense) bool {
		want := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		return e.SpentOn.Equal(want)
	})).Return(&models.Expense{UID: "exp-1"}, nil).Once()

	_, err := service.Create(context.Background(), "group-1", "user-1", models.DummyExpense{
		Title:    "Tickets",
		Amount:   120,
		Category: "Travel",
		Date:     "2026-02-28",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
