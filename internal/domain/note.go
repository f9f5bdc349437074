package domain

import "time"

// Note is a free-text annotation owned by exactly one Task.
// Deleting the task removes its notes (FK cascade at the store level).
type Note struct {
	ID      string
	TaskID  string
	Content string

	CreatedAt time.Time
}
