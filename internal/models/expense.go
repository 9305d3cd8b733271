// Package models содержит доменную модель расхода и предопределенный набор категорий.
package models

import "time"

// PredefinedCategories — глобальный набор категорий расходов, доступный каждой группе.
// Категория расхода должна входить либо сюда, либо в пользовательские категории группы.
var PredefinedCategories = []string{
	"Food & Groceries",
	"Transport",
	"Utilities",
	"Rent",
	"Entertainment",
	"Health",
	"Shopping",
	"Travel",
	"Education",
	"Personal Care",
	"Other",
}

// Expense представляет запись о расходе, принадлежащую ровно одной группе.
// Дата расхода календарная, без компонента времени.
type Expense struct {
	UID         string    `json:"id"`
	GroupID     string    `json:"group_id"`
	CreatedBy   string    `json:"created_by"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	SpentOn     time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyExpense используется для приёма данных нового расхода из JSON-запроса.
// Дата приходит строкой в формате 2006-01-02 и парсится вручную.
type DummyExpense struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Date        string  `json:"date" validate:"required"`
}

// ExpensePage — страница списка расходов с данными для пагинации.
type ExpensePage struct {
	Items []Expense `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Pages int       `json:"pages"`
}
