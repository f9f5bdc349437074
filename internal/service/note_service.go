package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/cache"
	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/repo"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// noteExcerptLen caps the note content quoted in activity descriptions.
const noteExcerptLen = 50

// NoteService orchestrates note mutations with the same pipeline as tasks:
// persist, record the audit activity, broadcast. Activities for notes
// snapshot the owning task's title, not the note content.
type NoteService struct {
	repo     repo.NoteRepo
	tasks    repo.TaskRepo
	recorder ActivityRecorder
	hub      Broadcaster
	cache    *cache.TaskCache
}

// NewNoteService creates a NoteService. If c is nil, caching is disabled.
func NewNoteService(r repo.NoteRepo, tasks repo.TaskRepo, rec ActivityRecorder, hub Broadcaster, c *cache.TaskCache) *NoteService {
	return &NoteService{repo: r, tasks: tasks, recorder: rec, hub: hub, cache: c}
}

func (s *NoteService) GetByID(ctx context.Context, id string) (dom.Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	return n, nil
}

func (s *NoteService) ListByTask(ctx context.Context, taskID string) ([]dom.Note, error) {
	return s.repo.ListByTask(ctx, taskID)
}

// Create adds a note to an existing task. Unknown task ids fail with
// ErrNotFound, including the race where the task disappears between the
// existence check and the insert (surfaced as an FK violation).
func (s *NoteService) Create(ctx context.Context, taskID, content string) (dom.Note, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}

	n, err := s.repo.Create(ctx, dom.Note{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)

	desc := "Note added: " + excerpt(content, noteExcerptLen)
	activity, err := s.recorder.Record(ctx, dom.ActionNoteCreated, dom.EntityNote, n.ID, task.Title, desc, nil)
	if err != nil {
		return dom.Note{}, fmt.Errorf("record activity: %w", err)
	}

	s.hub.NoteAdded(stream.NoteAddedMessage{
		ID:        n.ID,
		TaskID:    n.TaskID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	})
	s.hub.ActivityUpdate(stream.NewActivityUpdateMessage(activity))

	log.Infof("note created for task: %s", task.Title)
	return n, nil
}

// Update replaces the note's content.
func (s *NoteService) Update(ctx context.Context, id, content string) (dom.Note, error) {
	_, taskTitle, err := s.repo.GetWithTaskTitle(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}

	n, err := s.repo.UpdateContent(ctx, id, content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)

	activity, err := s.recorder.Record(ctx, dom.ActionNoteUpdated, dom.EntityNote, n.ID, taskTitle, "", nil)
	if err != nil {
		return dom.Note{}, fmt.Errorf("record activity: %w", err)
	}

	s.hub.NoteUpdated(stream.NoteUpdatedMessage{
		ID:        n.ID,
		TaskID:    n.TaskID,
		Content:   n.Content,
		UpdatedAt: time.Now().UTC(),
	})
	s.hub.ActivityUpdate(stream.NewActivityUpdateMessage(activity))

	log.Infof("note updated: %s", n.ID)
	return n, nil
}

// Delete returns false when the id is unknown. The activity and the
// broadcast payload are both captured before the row is removed: the
// activity's title snapshot comes from a join to the owning task, and the
// join is only possible while the note row still exists.
func (s *NoteService) Delete(ctx context.Context, id string) (bool, error) {
	n, taskTitle, err := s.repo.GetWithTaskTitle(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	activity, err := s.recorder.Record(ctx, dom.ActionNoteDeleted, dom.EntityNote, n.ID, taskTitle, "", nil)
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	msg := stream.NoteDeletedMessage{ID: n.ID, TaskID: n.TaskID}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	s.invalidateCache(ctx)

	s.hub.NoteDeleted(msg)
	s.hub.ActivityUpdate(stream.NewActivityUpdateMessage(activity))

	log.Infof("note deleted: %s", id)
	return true, nil
}

func (s *NoteService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

// excerpt truncates to max characters, not bytes. Cutting mid-rune would
// put invalid UTF-8 in the activity description and fail the audit insert
// after the note row is already committed.
func excerpt(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
