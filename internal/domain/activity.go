package domain

import "time"

// ActivityAction is the kind of mutation an Activity records.
type ActivityAction string

const (
	ActionTaskCreated     ActivityAction = "TaskCreated"
	ActionTaskUpdated     ActivityAction = "TaskUpdated"
	ActionTaskDeleted     ActivityAction = "TaskDeleted"
	ActionTaskCompleted   ActivityAction = "TaskCompleted"
	ActionTaskUncompleted ActivityAction = "TaskUncompleted"
	ActionNoteCreated     ActivityAction = "NoteCreated"
	ActionNoteUpdated     ActivityAction = "NoteUpdated"
	ActionNoteDeleted     ActivityAction = "NoteDeleted"
)

// DisplayName returns a human-readable name for the action.
func (a ActivityAction) DisplayName() string {
	switch a {
	case ActionTaskCreated:
		return "Task Created"
	case ActionTaskUpdated:
		return "Task Updated"
	case ActionTaskDeleted:
		return "Task Deleted"
	case ActionTaskCompleted:
		return "Task Completed"
	case ActionTaskUncompleted:
		return "Task Uncompleted"
	case ActionNoteCreated:
		return "Note Created"
	case ActionNoteUpdated:
		return "Note Updated"
	case ActionNoteDeleted:
		return "Note Deleted"
	default:
		return string(a)
	}
}

// EntityType identifies the kind of entity an Activity refers to.
type EntityType string

const (
	EntityTask EntityType = "Task"
	EntityNote EntityType = "Note"
)

// Activity is an immutable audit-log entry describing one past mutation.
// EntityTitle is a snapshot taken at event time, so the record stays
// meaningful after the subject entity is deleted.
type Activity struct {
	ID          string
	Action      ActivityAction
	EntityType  EntityType
	EntityID    string
	EntityTitle string
	Description string

	// AdditionalData carries an optional free-form JSON payload.
	AdditionalData *string

	CreatedAt time.Time
}
