package service

import (
	"context"
	"fmt"
	"time"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/repo"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SeedService fills an empty store with demo content so multi-tab streaming
// can be shown without manual setup. Seeding writes entities directly; it
// produces no activities and no broadcasts.
type SeedService struct {
	tasks      repo.TaskRepo
	notes      repo.NoteRepo
	activities repo.ActivityRepo
}

func NewSeedService(tasks repo.TaskRepo, notes repo.NoteRepo, activities repo.ActivityRepo) *SeedService {
	return &SeedService{tasks: tasks, notes: notes, activities: activities}
}

// SeedDemoData inserts demo tasks and notes when the store is empty.
// A non-empty store is left untouched.
func (s *SeedService) SeedDemoData(ctx context.Context) error {
	count, err := s.tasks.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if count > 0 {
		log.Info("store already contains data, skipping seeding")
		return nil
	}

	log.Info("seeding demo data")
	tasks := demoTasks()
	for _, t := range tasks {
		if _, err := s.tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("seed task: %w", err)
		}
	}
	notes := demoNotes(tasks)
	for _, n := range notes {
		if _, err := s.notes.Create(ctx, n); err != nil {
			return fmt.Errorf("seed note: %w", err)
		}
	}
	log.Infof("demo data seeded: %d tasks, %d notes", len(tasks), len(notes))
	return nil
}

// ResetDemoData wipes notes, tasks and activities, then reseeds. This is
// the only path that removes activities.
func (s *SeedService) ResetDemoData(ctx context.Context) error {
	log.Info("resetting demo data")
	if err := s.notes.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}
	if err := s.tasks.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if err := s.activities.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear activities: %w", err)
	}
	return s.SeedDemoData(ctx)
}

func demoTasks() []dom.Task {
	now := time.Now().UTC()
	mk := func(minutesAgo int, title, description string, completed bool) dom.Task {
		at := now.Add(-time.Duration(minutesAgo) * time.Minute)
		return dom.Task{
			ID:          uuid.NewString(),
			Title:       title,
			Description: description,
			IsCompleted: completed,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
	}
	return []dom.Task{
		mk(30, "Welcome to the Real-Time Demo",
			"This is a sample task to demonstrate real-time updates. Try creating, editing, or completing tasks in multiple browser tabs!", false),
		mk(25, "Test Real-Time Collaboration",
			"Open this application in multiple browser tabs and watch updates happen in real-time across all tabs.", false),
		mk(20, "Add Notes to Tasks",
			"Try adding notes to this task and see them appear instantly in other browser tabs.", false),
		mk(15, "Toggle Task Completion",
			"Click the completion toggle and watch the dashboard statistics update in real-time.", true),
		mk(10, "Monitor Activity Feed",
			"Check the dashboard to see a live activity feed of all changes happening in the system.", false),
	}
}

func demoNotes(tasks []dom.Task) []dom.Note {
	if len(tasks) < 3 {
		return nil
	}
	now := time.Now().UTC()
	mk := func(minutesAgo int, taskID, content string) dom.Note {
		return dom.Note{
			ID:        uuid.NewString(),
			TaskID:    taskID,
			Content:   content,
			CreatedAt: now.Add(-time.Duration(minutesAgo) * time.Minute),
		}
	}
	return []dom.Note{
		mk(28, tasks[0].ID, "Every change here shows up in all connected tabs instantly."),
		mk(22, tasks[1].ID, "Notes are scoped to one task and go away when the task is deleted."),
		mk(18, tasks[2].ID, "This note was seeded as demo content."),
	}
}
