// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для выпуска access и refresh токенов пользователя.
// MakerImpl — конкретная реализация с использованием секретного ключа и
// раздельных сроков жизни для каждого типа токена.
package jwt

import (
	"time"
)

const (
	// TokenTypeAccess — короткоживущий токен для доступа к защищенным эндпоинтам.
	TokenTypeAccess = "access"
	// TokenTypeRefresh — долгоживущий токен, принимается только эндпоинтом обновления.
	TokenTypeRefresh = "refresh"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateAccessToken выпускает access-токен для пользователя.
	GenerateAccessToken(userUID string) (string, error)
	// GenerateRefreshToken выпускает refresh-токен для пользователя.
	GenerateRefreshToken(userUID string) (string, error)
	// ParseToken возвращает *CustomClaims, если токен подписан нами и не истек.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и раздельных TTL для access и refresh токенов.
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	accessTTL  time.Duration // Время жизни access-токена.
	refreshTTL time.Duration // Время жизни refresh-токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
