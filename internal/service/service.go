package service

import (
	"context"
	"errors"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title must not be empty")
)

// Broadcaster pushes events to all connected clients. Implementations must
// be fire-and-forget: a send never blocks and its outcome never propagates
// back to the mutation that triggered it.
type Broadcaster interface {
	TaskCreated(msg stream.TaskCreatedMessage)
	TaskUpdated(msg stream.TaskUpdatedMessage)
	TaskDeleted(msg stream.TaskDeletedMessage)
	TaskCompletionChanged(msg stream.TaskCompletionChangedMessage)
	NoteAdded(msg stream.NoteAddedMessage)
	NoteUpdated(msg stream.NoteUpdatedMessage)
	NoteDeleted(msg stream.NoteDeletedMessage)
	ActivityUpdate(msg stream.ActivityUpdateMessage)
}

// ActivityRecorder appends one immutable audit record per mutating
// operation. Unlike broadcasts, a recording failure is fatal to the
// enclosing mutation. An empty description selects the stock template for
// the action.
type ActivityRecorder interface {
	Record(ctx context.Context, action dom.ActivityAction, entityType dom.EntityType,
		entityID, entityTitle, description string, additionalData *string) (dom.Activity, error)
}
