package group

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/storage/repository"
)

type GroupRepositoryMock struct {
	mock.Mock
}

func (m *GroupRepositoryMock) CreateGroup(ctx context.Context, name, creatorUID string, categories []string) (*models.Group, error) {
	args := m.Called(ctx, name, creatorUID, categories)
	g, _ := args.Get(0).(*models.Group)
	return g, args.Error(1)
}

func (m *GroupRepositoryMock) GetGroup(ctx context.Context, groupUID string) (*models.Group, error) {
	args := m.Called(ctx, groupUID)
	g, _ := args.Get(0).(*models.Group)
	return g, args.Error(1)
}

func (m *GroupRepositoryMock) ListGroupsForUser(ctx context.Context, userUID string) ([]*models.Group, error) {
	args := m.Called(ctx, userUID)
	g, _ := args.Get(0).([]*models.Group)
	return g, args.Error(1)
}

func (m *GroupRepositoryMock) AddMember(ctx context.Context, groupUID, userUID string, role models.Role) (int, error) {
	args := m.Called(ctx, groupUID, userUID, role)
	return args.Int(0), args.Error(1)
}

func (m *GroupRepositoryMock) UpdateMemberRole(ctx context.Context, groupUID, userUID string, role models.Role) (int, error) {
	args := m.Called(ctx, groupUID, userUID, role)
	return args.Int(0), args.Error(1)
}

func (m *GroupRepositoryMock) RemoveMemberKeepAdmin(ctx context.Context, groupUID, userUID string) (int, error) {
	args := m.Called(ctx, groupUID, userUID)
	return args.Int(0), args.Error(1)
}

func (m *GroupRepositoryMock) AddCategory(ctx context.Context, groupUID, category string) (int, error) {
	args := m.Called(ctx, groupUID, category)
	return args.Int(0), args.Error(1)
}

type UserCheckerMock struct {
	mock.Mock
}

func (m *UserCheckerMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func sampleGroup() *models.Group {
	return &models.Group{
		UID:       "group-1",
		Name:      "Trip to Karelia",
		CreatedBy: "admin-1",
		Members: []models.Member{
			{UserID: "admin-1", Role: models.RoleAdmin},
			{UserID: "member-1", Role: models.RoleMember},
		},
		CustomCategories: []string{"Sauna"},
	}
}

func TestRequireMember(t *testing.T) {
	tests := []struct {
		name    string
		userUID string
		group   *models.Group
		repoErr error
		wantErr error
	}{
		{
			name:    "администратор является участником",
			userUID: "admin-1",
			group:   sampleGroup(),
		},
		{
			name:    "обычный участник",
			userUID: "member-1",
			group:   sampleGroup(),
		},
		{
			name:    "группа не существует",
			userUID: "admin-1",
			repoErr: repository.ErrNotFound,
			wantErr: ErrGroupNotFound,
		},
		{
			name:    "посторонний пользователь",
			userUID: "stranger-1",
			group:   sampleGroup(),
			wantErr: ErrNotMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(GroupRepositoryMock)
			service := NewGroupService(repo, new(UserCheckerMock))
			repo.On("GetGroup", mock.Anything, "group-1").Return(tt.group, tt.repoErr).Once()

			group, err := service.RequireMember(context.Background(), "group-1", tt.userUID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, group)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "group-1", group.UID)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	repo := new(GroupRepositoryMock)
	service := NewGroupService(repo, new(UserCheckerMock))
	repo.On("GetGroup", mock.Anything, "group-1").Return(sampleGroup(), nil)

	_, err := service.RequireAdmin(context.Background(), "group-1", "admin-1")
	assert.NoError(t, err)

	_, err = service.RequireAdmin(context.Background(), "group-1", "member-1")
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = service.RequireAdmin(context.Background(), "group-1", "stranger-1")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestGroupService_Create_DeduplicatesCategories(t *testing.T) {
	repo := new(GroupRepositoryMock)
	service := NewGroupService(repo, new(UserCheckerMock))

	repo.On("CreateGroup", mock.Anything, "Flat 42", "admin-1", []string{"Sauna", "Garage"}).
		Return(sampleGroup(), nil).Once()

	_, err := service.Create(context.Background(), models.DummyGroup{
		Name:             "Flat 42",
		CustomCategories: []string{"Sauna", "Garage", "Sauna"},
	}, "admin-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGroupService_AddMember(t *testing.T) {
	tests := []struct {
		name       string
		actorUID   string
		userErr    error
		added      int
		wantErr    error
		skipRepoOn bool
	}{
		{
			name:     "администратор добавляет нового пользователя",
			actorUID: "admin-1",
			added:    1,
		},
		{
			name:       "участник не может добавлять пользователей",
			actorUID:   "member-1",
			wantErr:    ErrNotAdmin,
			skipRepoOn: true,
		},
		{
			name:       "пользователь не существует",
			actorUID:   "admin-1",
			userErr:    repository.ErrNotFound,
			wantErr:    ErrUserNotFound,
			skipRepoOn: true,
		},
		{
			name:     "пользователь уже состоит в группе",
			actorUID: "admin-1",
			added:    0,
			wantErr:  ErrAlreadyMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(GroupRepositoryMock)
			users := new(UserCheckerMock)
			service := NewGroupService(repo, users)

			repo.On("GetGroup", mock.Anything, "group-1").Return(sampleGroup(), nil)
			users.On("GetUser", mock.Anything, "new-user").
				Return(&models.User{UID: "new-user"}, tt.userErr).Maybe()
			if !tt.skipRepoOn {
				repo.On("AddMember", mock.Anything, "group-1", "new-user", models.RoleMember).
					Return(tt.added, nil).Once()
			}

			_, err := service.AddMember(context.Background(), "group-1", tt.actorUID, "new-user")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGroupService_Promote(t *testing.T) {
	repo := new(GroupRepositoryMock)
	service := NewGroupService(repo, new(UserCheckerMock))

	repo.On("GetGroup", mock.Anything, "group-1").Return(sampleGroup(), nil)
	repo.On("UpdateMemberRole", mock.Anything, "group-1", "member-1", models.RoleAdmin).
		Return(1, nil).Once()

	_, err := service.Promote(context.Background(), "group-1", "admin-1", "member-1")
	assert.NoError(t, err)

	_, err = service.Promote(context.Background(), "group-1", "admin-1", "stranger-1")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	_, err = service.Promote(context.Background(), "group-1", "member-1", "member-1")
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestGroupService_RemoveMember(t *testing.T) {
	tests := []struct {
		name      string
		actorUID  string
		memberUID string
		removed   int
		callRepo  bool
		wantErr   error
	}{
		{
			name:      "администратор удаляет участника",
			actorUID:  "admin-1",
			memberUID: "member-1",
			removed:   1,
			callRepo:  true,
		},
		{
			name:      "участник не может удалить себя",
			actorUID:  "member-1",
			memberUID: "member-1",
			wantErr:   ErrNotAdmin,
		},
		{
			name:      "участник не может удалять других",
			actorUID:  "member-1",
			memberUID: "admin-1",
			wantErr:   ErrNotAdmin,
		},
		{
			name:      "последний администратор защищен",
			actorUID:  "admin-1",
			memberUID: "admin-1",
			removed:   0,
			callRepo:  true,
			wantErr:   ErrLastAdmin,
		},
		{
			name:      "участник не состоит в группе",
			actorUID:  "admin-1",
			memberUID: "stranger-1",
			wantErr:   ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(GroupRepositoryMock)
			service := NewGroupService(repo, new(UserCheckerMock))

			repo.On("GetGroup", mock.Anything, "group-1").Return(sampleGroup(), nil)
			if tt.callRepo {
				repo.On("RemoveMemberKeepAdmin", mock.Anything, "group-1", tt.memberUID).
					Return(tt.removed, nil).Once()
			}

			_, err := service.RemoveMember(context.Background(), "group-1", tt.actorUID, tt.memberUID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if !tt.callRepo {
					repo.AssertNotCalled(t, "RemoveMemberKeepAdmin",
						mock.Anything, mock.Anything, mock.Anything)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGroupService_AddCategory(t *testing.T) {
	t.Run("администратор добавляет новую категорию", func(t *testing.T) {
		repo := new(GroupRepositoryMock)
		service := NewGroupService(repo, new(UserCheckerMock))
		repo.On("GetGroup", mock.Anything, "group-1").Return(sampleGroup(), nil)
		repo.On("AddCategory", mock.Anything, "group-1", "Fuel").Return(1, nil).Once()

		_, err := service.AddCategory(context.Background(), "group-1", "admin-1", "Fuel")
		assert.NoError(t, err)
	})

	t.Run("дубликат категории", func(t *testing.T) {
		repo := new(GroupRepositoryMock)
		service := NewGroupService(repo, new(UserCheckerMock))
		repo.On("GetGroup", mock.Anything, "group-1").Return(sampleGroup(), nil)
		repo.On("AddCategory", mock.Anything, "group-1", "Sauna").Return(0, nil).Once()

		_, err := service.AddCategory(context.Background(), "group-1", "admin-1", "Sauna")
		assert.ErrorIs(t, err, ErrCategoryExists)
	})

	t.Run("превышен лимит категорий", func(t *testing.T) {
		full := sampleGroup()
		full.CustomCategories = make([]string, models.MaxCustomCategories)
		repo := new(GroupRepositoryMock)
		service := NewGroupService(repo, new(UserCheckerMock))
		repo.On("GetGroup", mock.Anything, "group-1").Return(full, nil)

		_, err := service.AddCategory(context.Background(), "group-1", "admin-1", "One more")
		assert.ErrorIs(t, err, ErrTooManyCategories)
	})

	t.Run("участник не может добавлять категории", func(t *testing.T) {
		repo := new(GroupRepositoryMock)
		service := NewGroupService(repo, new(UserCheckerMock))
		repo.On("GetGroup", mock.Anything, "group-1").Return(sampleGroup(), nil)

		_, err := service.AddCategory(context.Background(), "group-1", "member-1", "Fuel")
		assert.ErrorIs(t, err, ErrNotAdmin)
	})
}

func TestGroupService_Categories(t *testing.T) {
	groupData := sampleGroup()
	groupData.CustomCategories = []string{"Sauna", "Other"}

	repo := new(GroupRepositoryMock)
	service := NewGroupService(repo, new(UserCheckerMock))
	repo.On("GetGroup", mock.Anything, "group-1").Return(groupData, nil)

	categories, err := service.Categories(context.Background(), "group-1", "member-1")
	require.NoError(t, err)

	// Единый объединенный список: Other есть и в предопределенных,
	// дубликат схлопывается.
	assert.Equal(t, append(append([]string(nil), models.PredefinedCategories...), "Sauna"), categories)

	_, err = service.Categories(context.Background(), "group-1", "stranger-1")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestAllowedCategories(t *testing.T) {
	group := sampleGroup()
	group.CustomCategories = []string{"Sauna", "Other"}

	allowed := AllowedCategories(group)

	assert.Contains(t, allowed, "Food & Groceries")
	assert.Contains(t, allowed, "Sauna")
	// Категория Other есть и в предопределенных, дубликат схлопывается.
	count := 0
	for _, c := range allowed {
		if c == "Other" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, allowed, len(models.PredefinedCategories)+1)
}
