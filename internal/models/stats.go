package models

// CategoryTotal — суммарные траты группы по одной категории.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// UserTotal — суммарные траты одного участника группы.
type UserTotal struct {
	UserID string  `json:"user_id"`
	Total  float64 `json:"total"`
}

// MonthTotal — суммарные траты группы за один календарный месяц.
type MonthTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// Stats — агрегированная статистика расходов группы: общая сумма и
// разбивки по категориям (по убыванию), участникам (по убыванию)
// и месяцам (в хронологическом порядке).
type Stats struct {
	Total      float64         `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByUser     []UserTotal     `json:"by_user"`
	Monthly    []MonthTotal    `json:"monthly"`
}
