package service

import (
	"context"
	"fmt"
	"time"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/repo"

	"github.com/google/uuid"
)

const (
	defaultActivityCount   = 20
	maxActivityCount       = 100
	dashboardActivityCount = 10
)

// DashboardData is the read-only rollup served by the dashboard endpoint.
type DashboardData struct {
	TotalTasks       int
	CompletedTasks   int
	PendingTasks     int
	TotalNotes       int
	CompletionRate   float64
	NotesPerTask     int
	RecentActivities []dom.Activity
}

// ActivityService is the audit recorder and the dashboard aggregator.
// Activities are append-only; recording failures are fatal to the mutation
// that requested them.
type ActivityService struct {
	activities repo.ActivityRepo
	tasks      repo.TaskRepo
	notes      repo.NoteRepo
}

func NewActivityService(a repo.ActivityRepo, tasks repo.TaskRepo, notes repo.NoteRepo) *ActivityService {
	return &ActivityService{activities: a, tasks: tasks, notes: notes}
}

// Record appends one activity. An empty description selects the stock
// template for the action.
func (s *ActivityService) Record(ctx context.Context, action dom.ActivityAction, entityType dom.EntityType,
	entityID, entityTitle, description string, additionalData *string) (dom.Activity, error) {
	if description == "" {
		description = defaultDescription(action, entityTitle)
	}
	return s.activities.Insert(ctx, dom.Activity{
		ID:             uuid.NewString(),
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		EntityTitle:    entityTitle,
		Description:    description,
		AdditionalData: additionalData,
		CreatedAt:      time.Now().UTC(),
	})
}

// GetRecentActivities returns the most recent activities, newest first.
// Counts outside (0,100) fall back to the default page size of 20.
func (s *ActivityService) GetRecentActivities(ctx context.Context, count int) ([]dom.Activity, error) {
	if count <= 0 || count >= maxActivityCount {
		count = defaultActivityCount
	}
	return s.activities.ListRecent(ctx, count)
}

// GetDashboardData counts tasks and notes and fetches the ten most recent
// activities. NotesPerTask keeps the integer truncation of the original
// product behavior; it is not a rounded average.
func (s *ActivityService) GetDashboardData(ctx context.Context) (DashboardData, error) {
	totalTasks, err := s.tasks.CountAll(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	completed, err := s.tasks.CountCompleted(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	totalNotes, err := s.notes.CountAll(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	recent, err := s.activities.ListRecent(ctx, dashboardActivityCount)
	if err != nil {
		return DashboardData{}, err
	}

	d := DashboardData{
		TotalTasks:       totalTasks,
		CompletedTasks:   completed,
		PendingTasks:     totalTasks - completed,
		TotalNotes:       totalNotes,
		RecentActivities: recent,
	}
	if totalTasks > 0 {
		d.CompletionRate = float64(completed*100) / float64(totalTasks)
		d.NotesPerTask = totalNotes / totalTasks
	}
	return d, nil
}

func defaultDescription(action dom.ActivityAction, title string) string {
	switch action {
	case dom.ActionTaskCreated:
		return fmt.Sprintf("Task '%s' was created", title)
	case dom.ActionTaskUpdated:
		return fmt.Sprintf("Task '%s' was updated", title)
	case dom.ActionTaskDeleted:
		return fmt.Sprintf("Task '%s' was deleted", title)
	case dom.ActionTaskCompleted:
		return fmt.Sprintf("Task '%s' was completed", title)
	case dom.ActionTaskUncompleted:
		return fmt.Sprintf("Task '%s' was marked as pending", title)
	case dom.ActionNoteCreated:
		return fmt.Sprintf("Note was added to task '%s'", title)
	case dom.ActionNoteUpdated:
		return fmt.Sprintf("Note was updated in task '%s'", title)
	case dom.ActionNoteDeleted:
		return fmt.Sprintf("Note was deleted from task '%s'", title)
	default:
		return fmt.Sprintf("%s performed on %s", action, title)
	}
}
