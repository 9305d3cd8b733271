// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saraevns/group-expenses/internal/lib/jwt"
	"github.com/saraevns/group-expenses/internal/lib/password"
	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/storage/repository"
)

var (
	// ErrEmailTaken возвращается при попытке зарегистрировать уже занятый email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	// или неактивной учетной записи.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken возвращается для просроченного, поддельного токена
	// или токена неподходящего типа.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound возвращается, когда пользователь отсутствует.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию, обновление и валидацию JWT.
type AuthService struct {
	users      UserRepository
	jwtMaker   jwt.Maker
	bcryptCost int
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtMaker:   jwtMaker,
		bcryptCost: bcryptCost,
	}
}

// Register создает нового пользователя: email приводится к нижнему регистру,
// пароль хэшируется. Занятый email дает ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (*models.User, error) {
	hashed, err := password.GetHash(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:     req.FullName,
		PasswordHash: hashed,
		IsActive:     true,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	created, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login проверяет пароль пользователя и выпускает пару токенов: access и refresh.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (access, refresh string, user *models.User, err error) {
	user, err = s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, err
	}
	if !user.IsActive {
		return "", "", nil, ErrInvalidCredentials
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	access, err = s.jwtMaker.GenerateAccessToken(user.UID)
	if err != nil {
		return "", "", nil, err
	}
	refresh, err = s.jwtMaker.GenerateRefreshToken(user.UID)
	if err != nil {
		return "", "", nil, err
	}
	return access, refresh, user, nil
}

// Refresh принимает refresh-токен и выпускает новый access-токен.
// Токен любого другого типа отклоняется. Новый refresh-токен не выпускается,
// ротация refresh-токенов не поддерживается.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return "", ErrInvalidToken
	}
	return s.jwtMaker.GenerateAccessToken(claims.UserUID)
}

// ValidateAccessToken проверяет access-токен и возвращает UID пользователя.
// Refresh-токен здесь не принимается.
func (s *AuthService) ValidateAccessToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return "", ErrInvalidToken
	}
	return claims.UserUID, nil
}

// GetProfile возвращает пользователя по его UID.
func (s *AuthService) GetProfile(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
