package domain

import "time"

// Task is the domain entity (source of truth).
// It does not depend on Gin, Postgres or Redis.
type Task struct {
	ID          string
	Title       string
	Description string
	IsCompleted bool

	CreatedAt time.Time
	UpdatedAt time.Time

	Notes []Note
}
