package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/cache"
	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/repo"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// TaskService orchestrates the task mutation pipeline: persist, record the
// audit activity, then broadcast. The persistence write always precedes the
// audit write, and the audit write precedes the broadcast, so a client
// re-fetching on an event sees the mutation already committed.
type TaskService struct {
	repo     repo.TaskRepo
	recorder ActivityRecorder
	hub      Broadcaster
	cache    *cache.TaskCache
	sf       singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, rec ActivityRecorder, hub Broadcaster, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, recorder: rec, hub: hub, cache: c}
}

func (s *TaskService) List(ctx context.Context) ([]dom.Task, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do(cacheKeyList, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.List(ctx)
}

const cacheKeyList = "task:list"

func (s *TaskService) GetByID(ctx context.Context, id string) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Create persists a new task, records Activity(TaskCreated) and broadcasts
// TaskCreated. The new task starts pending with both timestamps equal.
func (s *TaskService) Create(ctx context.Context, title, description string) (dom.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}

	now := time.Now().UTC()
	t, err := s.repo.Create(ctx, dom.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return dom.Task{}, err
	}
	t.Notes = []dom.Note{}
	s.invalidateCache(ctx)

	activity, err := s.recorder.Record(ctx, dom.ActionTaskCreated, dom.EntityTask, t.ID, t.Title, "", nil)
	if err != nil {
		return dom.Task{}, fmt.Errorf("record activity: %w", err)
	}

	s.hub.TaskCreated(stream.TaskCreatedMessage{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	})
	s.hub.ActivityUpdate(stream.NewActivityUpdateMessage(activity))

	log.Infof("task created: %s", t.Title)
	return t, nil
}

// Update applies title, description and completion flag. A completion flip
// yields Activity(TaskCompleted|TaskUncompleted) and a TaskCompletionChanged
// broadcast; any other change yields Activity(TaskUpdated) and TaskUpdated.
// Exactly one activity and one entity event per call, never both kinds.
func (s *TaskService) Update(ctx context.Context, id, title, description string, isCompleted bool) (dom.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}

	wasCompleted := existing.IsCompleted
	patch := existing
	patch.Title = title
	patch.Description = strings.TrimSpace(description)
	patch.IsCompleted = isCompleted
	patch.UpdatedAt = time.Now().UTC()

	t, err := s.repo.Update(ctx, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	t.Notes = existing.Notes
	s.invalidateCache(ctx)

	action := dom.ActionTaskUpdated
	if wasCompleted != isCompleted {
		if isCompleted {
			action = dom.ActionTaskCompleted
		} else {
			action = dom.ActionTaskUncompleted
		}
	}
	activity, err := s.recorder.Record(ctx, action, dom.EntityTask, t.ID, t.Title, "", nil)
	if err != nil {
		return dom.Task{}, fmt.Errorf("record activity: %w", err)
	}

	if wasCompleted != isCompleted {
		s.hub.TaskCompletionChanged(stream.TaskCompletionChangedMessage{
			ID:          t.ID,
			Title:       t.Title,
			IsCompleted: t.IsCompleted,
			UpdatedAt:   t.UpdatedAt,
		})
	} else {
		s.hub.TaskUpdated(stream.TaskUpdatedMessage{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			IsCompleted: t.IsCompleted,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	s.hub.ActivityUpdate(stream.NewActivityUpdateMessage(activity))

	log.Infof("task updated: %s", t.Title)
	return t, nil
}

// Delete returns false when the id is unknown. The TaskDeleted activity is
// recorded before the row goes away so it can snapshot the title; the store
// cascades the task's notes.
func (s *TaskService) Delete(ctx context.Context, id string) (bool, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	activity, err := s.recorder.Record(ctx, dom.ActionTaskDeleted, dom.EntityTask, t.ID, t.Title, "", nil)
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		// Lost a race with a concurrent delete; the audit record stands.
		return false, nil
	}
	s.invalidateCache(ctx)

	s.hub.TaskDeleted(stream.TaskDeletedMessage{TaskID: id})
	s.hub.ActivityUpdate(stream.NewActivityUpdateMessage(activity))

	log.Infof("task deleted: %s", t.Title)
	return true, nil
}

// ToggleCompletion flips the completion flag. Returns false when the id is
// unknown. Toggling twice returns the task to its original state and leaves
// two activities of complementary kinds.
func (s *TaskService) ToggleCompletion(ctx context.Context, id string) (bool, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	s.invalidateCache(ctx)

	action := dom.ActionTaskUncompleted
	if updated.IsCompleted {
		action = dom.ActionTaskCompleted
	}
	activity, err := s.recorder.Record(ctx, action, dom.EntityTask, updated.ID, updated.Title, "", nil)
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}

	s.hub.TaskCompletionChanged(stream.TaskCompletionChangedMessage{
		ID:          updated.ID,
		Title:       updated.Title,
		IsCompleted: updated.IsCompleted,
		UpdatedAt:   updated.UpdatedAt,
	})
	s.hub.ActivityUpdate(stream.NewActivityUpdateMessage(activity))

	log.Infof("task completion toggled: %s -> %v", updated.Title, updated.IsCompleted)
	return true, nil
}

// invalidateCache runs before any broadcast for the mutation, so clients
// re-fetching on the event cannot be served the pre-mutation list.
func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
