package domain

import "time"

type Category struct {
	ID          string
	Name        string
	SubCategory []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
