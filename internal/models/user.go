// Package models содержит доменные структуры сервиса групповых расходов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"id"`         // Уникальный идентификатор пользователя
	Email        string    `json:"email"`      // Электронная почта, хранится в нижнем регистре, уникальна
	FullName     string    `json:"full_name"`  // Отображаемое имя
	PasswordHash string    `json:"-"`          // Хэш пароля, наружу не отдается
	IsActive     bool      `json:"is_active"`  // Признак активности учетной записи
	CreatedAt    time.Time `json:"created_at"` // Дата создания
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLogin используется для приёма учетных данных из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyRefresh используется для приёма refresh-токена из JSON-запроса.
type DummyRefresh struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
