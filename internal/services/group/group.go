// Package group содержит логику бизнес-уровня для работы с группами:
// участники, роли, пользовательские категории.
package group

import (
	"context"
	"errors"

	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/storage/repository"
)

var (
	// ErrGroupNotFound возвращается, когда группа не существует
	// либо скрыта от текущего пользователя.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotMember возвращается, когда пользователь не состоит в группе.
	ErrNotMember = errors.New("not a group member")
	// ErrNotAdmin возвращается, когда операция требует роли admin.
	ErrNotAdmin = errors.New("admin role required")
	// ErrUserNotFound возвращается при попытке добавить несуществующего пользователя.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyMember возвращается, когда пользователь уже состоит в группе.
	ErrAlreadyMember = errors.New("user is already a member")
	// ErrMemberNotFound возвращается, когда участник отсутствует в группе.
	ErrMemberNotFound = errors.New("member not found")
	// ErrLastAdmin возвращается при попытке удалить последнего администратора.
	ErrLastAdmin = errors.New("cannot remove the last admin")
	// ErrCategoryExists возвращается при добавлении уже существующей категории.
	ErrCategoryExists = errors.New("category already exists")
	// ErrTooManyCategories возвращается при превышении лимита категорий группы.
	ErrTooManyCategories = errors.New("custom category limit reached")
)

// GroupRepository описывает контракт для работы с группами в базе данных.
// Методы изменения возвращают количество затронутых строк.
type GroupRepository interface {
	CreateGroup(ctx context.Context, name, creatorUID string, categories []string) (*models.Group, error)
	GetGroup(ctx context.Context, groupUID string) (*models.Group, error)
	ListGroupsForUser(ctx context.Context, userUID string) ([]*models.Group, error)
	AddMember(ctx context.Context, groupUID, userUID string, role models.Role) (int, error)
	UpdateMemberRole(ctx context.Context, groupUID, userUID string, role models.Role) (int, error)
	RemoveMemberKeepAdmin(ctx context.Context, groupUID, userUID string) (int, error)
	AddCategory(ctx context.Context, groupUID, category string) (int, error)
}

// UserChecker проверяет существование пользователя перед добавлением в группу.
type UserChecker interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// GroupService реализует операции над группами, участниками и категориями.
type GroupService struct {
	groups GroupRepository
	users  UserChecker
}

// NewGroupService создает новый экземпляр GroupService.
func NewGroupService(groups GroupRepository, users UserChecker) *GroupService {
	return &GroupService{groups: groups, users: users}
}

// RoleOf возвращает роль пользователя в группе и признак членства.
func RoleOf(group *models.Group, userUID string) (models.Role, bool) {
	for _, m := range group.Members {
		if m.UserID == userUID {
			return m.Role, true
		}
	}
	return "", false
}

// RequireMember загружает группу и проверяет членство пользователя.
// Несуществующая группа и группа, в которой пользователь не состоит,
// дают ErrGroupNotFound и ErrNotMember соответственно.
func (s *GroupService) RequireMember(ctx context.Context, groupUID, userUID string) (*models.Group, error) {
	group, err := s.groups.GetGroup(ctx, groupUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if _, ok := RoleOf(group, userUID); !ok {
		return nil, ErrNotMember
	}
	return group, nil
}

// RequireAdmin загружает группу и проверяет, что пользователь — администратор.
func (s *GroupService) RequireAdmin(ctx context.Context, groupUID, userUID string) (*models.Group, error) {
	group, err := s.RequireMember(ctx, groupUID, userUID)
	if err != nil {
		return nil, err
	}
	if role, _ := RoleOf(group, userUID); role != models.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return group, nil
}

// Create создает группу, назначая создателя администратором.
// Дубликаты в списке пользовательских категорий отбрасываются.
func (s *GroupService) Create(ctx context.Context, req models.DummyGroup, creatorUID string) (*models.Group, error) {
	return s.groups.CreateGroup(ctx, req.Name, creatorUID, dedupe(req.CustomCategories))
}

// ListForUser возвращает все группы, в которых состоит пользователь.
func (s *GroupService) ListForUser(ctx context.Context, userUID string) ([]*models.Group, error) {
	return s.groups.ListGroupsForUser(ctx, userUID)
}

// Get возвращает группу, если пользователь является ее участником.
func (s *GroupService) Get(ctx context.Context, groupUID, userUID string) (*models.Group, error) {
	return s.RequireMember(ctx, groupUID, userUID)
}

// AddMember добавляет пользователя в группу с ролью member.
// Доступно только администраторам группы.
func (s *GroupService) AddMember(ctx context.Context, groupUID, actorUID, newUserUID string) (*models.Group, error) {
	if _, err := s.RequireAdmin(ctx, groupUID, actorUID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, newUserUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	added, err := s.groups.AddMember(ctx, groupUID, newUserUID, models.RoleMember)
	if err != nil {
		return nil, err
	}
	if added == 0 {
		return nil, ErrAlreadyMember
	}
	return s.groups.GetGroup(ctx, groupUID)
}

// Promote повышает участника группы до администратора.
// Понижение роли не поддерживается.
func (s *GroupService) Promote(ctx context.Context, groupUID, actorUID, memberUID string) (*models.Group, error) {
	group, err := s.RequireAdmin(ctx, groupUID, actorUID)
	if err != nil {
		return nil, err
	}
	if _, ok := RoleOf(group, memberUID); !ok {
		return nil, ErrMemberNotFound
	}
	if _, err = s.groups.UpdateMemberRole(ctx, groupUID, memberUID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.groups.GetGroup(ctx, groupUID)
}

// RemoveMember удаляет участника из группы. Доступно только администраторам.
// Последний администратор группы удален быть не может.
func (s *GroupService) RemoveMember(ctx context.Context, groupUID, actorUID, memberUID string) (*models.Group, error) {
	group, err := s.RequireAdmin(ctx, groupUID, actorUID)
	if err != nil {
		return nil, err
	}
	if _, ok := RoleOf(group, memberUID); !ok {
		return nil, ErrMemberNotFound
	}
	removed, err := s.groups.RemoveMemberKeepAdmin(ctx, groupUID, memberUID)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		// Удаление отклонено условием запроса: участник — последний админ.
		return nil, ErrLastAdmin
	}
	return s.groups.GetGroup(ctx, groupUID)
}

// AddCategory добавляет пользовательскую категорию в группу.
// Доступно только администраторам, лимит — models.MaxCustomCategories.
func (s *GroupService) AddCategory(ctx context.Context, groupUID, actorUID, category string) (*models.Group, error) {
	group, err := s.RequireAdmin(ctx, groupUID, actorUID)
	if err != nil {
		return nil, err
	}
	if len(group.CustomCategories) >= models.MaxCustomCategories {
		return nil, ErrTooManyCategories
	}
	added, err := s.groups.AddCategory(ctx, groupUID, category)
	if err != nil {
		return nil, err
	}
	if added == 0 {
		return nil, ErrCategoryExists
	}
	return s.groups.GetGroup(ctx, groupUID)
}

// Categories возвращает допустимые категории расходов группы: объединение
// предопределенных и пользовательских без дубликатов, с сохранением порядка.
// Доступно всем участникам группы.
func (s *GroupService) Categories(ctx context.Context, groupUID, userUID string) ([]string, error) {
	group, err := s.RequireMember(ctx, groupUID, userUID)
	if err != nil {
		return nil, err
	}
	return AllowedCategories(group), nil
}

// AllowedCategories возвращает объединение предопределенных и пользовательских
// категорий группы без дубликатов, с сохранением порядка.
func AllowedCategories(group *models.Group) []string {
	return dedupe(append(append([]string(nil), models.PredefinedCategories...), group.CustomCategories...))
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
