package services

import "time"

type Service struct {
	ID        int64
	Name      string
	Period    int // календарных дней с даты старта
	MaxDays   int // лимит посещений
	Price     float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
