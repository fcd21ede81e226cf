package models

import "time"

// Product stock is only ever mutated through the order processor's
// conditional decrement; stock never goes below zero.
type Product struct {
	ID        int
	Name      string
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
