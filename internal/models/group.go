// Package models содержит доменные структуры группы и её участников.
package models

import "time"

// Role описывает роль участника в группе. Закрытое перечисление:
// допустимы только RoleAdmin и RoleMember.
type Role string

const (
	// RoleAdmin — администратор группы, может управлять составом и категориями.
	RoleAdmin Role = "admin"
	// RoleMember — обычный участник, может добавлять расходы и смотреть статистику.
	RoleMember Role = "member"
)

// Member представляет участие пользователя в группе с определенной ролью.
type Member struct {
	UserID   string `json:"user_id"`             // Идентификатор пользователя
	Role     Role   `json:"role"`                // Роль участника
	FullName string `json:"full_name,omitempty"` // Имя участника, заполняется при чтении группы
}

// Group представляет группу совместного учета расходов.
// Участники хранятся без порядка, пользователь входит в список не более одного раза.
type Group struct {
	UID              string    `json:"id"`
	Name             string    `json:"name"`
	CreatedBy        string    `json:"created_by"`
	Members          []Member  `json:"members"`
	CustomCategories []string  `json:"custom_categories"`
	CreatedAt        time.Time `json:"created_at"`
}

// MaxCustomCategories ограничивает число пользовательских категорий группы.
const MaxCustomCategories = 20

// DummyGroup используется для приёма данных новой группы из JSON-запроса.
type DummyGroup struct {
	Name             string   `json:"name" validate:"required,min=1,max=100"`
	CustomCategories []string `json:"custom_categories" validate:"max=20,dive,min=1,max=100"`
}

// DummyAddMember используется для приёма идентификатора добавляемого участника.
type DummyAddMember struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}

// DummyAddCategory используется для приёма новой пользовательской категории.
type DummyAddCategory struct {
	Category string `json:"category" validate:"required,min=1,max=100"`
}
