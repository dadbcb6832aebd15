package domain

import "time"

type Room struct {
	ID          int64
	Type        string
	Price       float64
	Description string
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
