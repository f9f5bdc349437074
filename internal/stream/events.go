package stream

import (
	"time"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
)

// Event names pushed to connected clients. Clients never send domain
// commands over the stream; it is push-only.
const (
	EventTaskCreated           = "TaskCreated"
	EventTaskUpdated           = "TaskUpdated"
	EventTaskDeleted           = "TaskDeleted"
	EventTaskCompletionChanged = "TaskCompletionChanged"
	EventNoteAdded             = "NoteAdded"
	EventNoteUpdated           = "NoteUpdated"
	EventNoteDeleted           = "NoteDeleted"
	EventActivityUpdate        = "ActivityUpdate"
)

type TaskCreatedMessage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TaskUpdatedMessage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TaskDeletedMessage struct {
	TaskID string `json:"taskId"`
}

type TaskCompletionChangedMessage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type NoteAddedMessage struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type NoteUpdatedMessage struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteDeletedMessage struct {
	ID     string `json:"id"`
	TaskID string `json:"taskId"`
}

type ActivityUpdateMessage struct {
	ID                string    `json:"id"`
	Action            string    `json:"action"`
	ActionDisplayName string    `json:"actionDisplayName"`
	EntityType        string    `json:"entityType"`
	EntityID          string    `json:"entityId"`
	EntityTitle       string    `json:"entityTitle"`
	Description       string    `json:"description"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewActivityUpdateMessage builds the stream payload for a recorded activity.
func NewActivityUpdateMessage(a dom.Activity) ActivityUpdateMessage {
	return ActivityUpdateMessage{
		ID:                a.ID,
		Action:            string(a.Action),
		ActionDisplayName: a.Action.DisplayName(),
		EntityType:        string(a.EntityType),
		EntityID:          a.EntityID,
		EntityTitle:       a.EntityTitle,
		Description:       a.Description,
		CreatedAt:         a.CreatedAt,
	}
}
