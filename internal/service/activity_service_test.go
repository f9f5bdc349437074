package service

import (
	"context"
	"fmt"
	"testing"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityFixture() (*fakeTaskRepo, *fakeNoteRepo, *fakeActivityRepo, *ActivityService) {
	tasks := newFakeTaskRepo()
	notes := newFakeNoteRepo(tasks)
	activities := &fakeActivityRepo{}
	return tasks, notes, activities, NewActivityService(activities, tasks, notes)
}

func TestRecordDefaultDescriptions(t *testing.T) {
	_, _, _, svc := newActivityFixture()
	ctx := context.Background()

	cases := []struct {
		action dom.ActivityAction
		want   string
	}{
		{dom.ActionTaskCreated, "Task 'Buy milk' was created"},
		{dom.ActionTaskUpdated, "Task 'Buy milk' was updated"},
		{dom.ActionTaskDeleted, "Task 'Buy milk' was deleted"},
		{dom.ActionTaskCompleted, "Task 'Buy milk' was completed"},
		{dom.ActionTaskUncompleted, "Task 'Buy milk' was marked as pending"},
		{dom.ActionNoteCreated, "Note was added to task 'Buy milk'"},
		{dom.ActionNoteUpdated, "Note was updated in task 'Buy milk'"},
		{dom.ActionNoteDeleted, "Note was deleted from task 'Buy milk'"},
	}
	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			a, err := svc.Record(ctx, tc.action, dom.EntityTask, "some-id", "Buy milk", "", nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, a.Description)
		})
	}
}

func TestRecordExplicitDescriptionWins(t *testing.T) {
	_, _, _, svc := newActivityFixture()

	a, err := svc.Record(context.Background(), dom.ActionNoteCreated, dom.EntityNote,
		"some-id", "Buy milk", "Note added: remember the receipt", nil)
	require.NoError(t, err)
	assert.Equal(t, "Note added: remember the receipt", a.Description)
}

func TestGetRecentActivitiesClamp(t *testing.T) {
	_, _, activities, svc := newActivityFixture()
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := svc.Record(ctx, dom.ActionTaskCreated, dom.EntityTask,
			fmt.Sprintf("id-%d", i), fmt.Sprintf("Task %d", i), "", nil)
		require.NoError(t, err)
	}
	require.Len(t, activities.entries, 30)

	cases := []struct {
		count int
		want  int
	}{
		{0, 20},
		{-5, 20},
		{100, 20},
		{500, 20},
		{5, 5},
		{99, 30},
	}
	for _, tc := range cases {
		list, err := svc.GetRecentActivities(ctx, tc.count)
		require.NoError(t, err)
		assert.Len(t, list, tc.want, "count=%d", tc.count)
	}
}

func TestGetDashboardDataEmpty(t *testing.T) {
	_, _, _, svc := newActivityFixture()

	d, err := svc.GetDashboardData(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.TotalTasks)
	assert.Zero(t, d.CompletedTasks)
	assert.Zero(t, d.PendingTasks)
	assert.Zero(t, d.TotalNotes)
	assert.Zero(t, d.CompletionRate)
	assert.Zero(t, d.NotesPerTask)
	assert.Empty(t, d.RecentActivities)
}

func TestGetDashboardData(t *testing.T) {
	tasks, notes, _, svc := newActivityFixture()
	hub := &recordingBroadcaster{}
	taskSvc := NewTaskService(tasks, svc, hub, nil)
	noteSvc := NewNoteService(notes, tasks, svc, hub, nil)
	ctx := context.Background()

	task, err := taskSvc.Create(ctx, "Buy milk", "")
	require.NoError(t, err)
	_, err = noteSvc.Create(ctx, task.ID, "semi-skimmed")
	require.NoError(t, err)
	toggled, err := taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, toggled)

	d, err := svc.GetDashboardData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalTasks)
	assert.Equal(t, 1, d.CompletedTasks)
	assert.Equal(t, 0, d.PendingTasks)
	assert.Equal(t, 1, d.TotalNotes)
	assert.Equal(t, float64(100), d.CompletionRate)
	assert.Equal(t, 1, d.NotesPerTask)

	require.NotEmpty(t, d.RecentActivities)
	newest := d.RecentActivities[0]
	assert.Equal(t, dom.ActionTaskCompleted, newest.Action)
	assert.Equal(t, "Buy milk", newest.EntityTitle)
}

func TestDashboardNotesPerTaskTruncates(t *testing.T) {
	tasks, notes, _, svc := newActivityFixture()
	hub := &recordingBroadcaster{}
	taskSvc := NewTaskService(tasks, svc, hub, nil)
	noteSvc := NewNoteService(notes, tasks, svc, hub, nil)
	ctx := context.Background()

	// 3 notes across 2 tasks: the ratio is 1, not 1.5.
	a, err := taskSvc.Create(ctx, "First", "")
	require.NoError(t, err)
	b, err := taskSvc.Create(ctx, "Second", "")
	require.NoError(t, err)
	for _, taskID := range []string{a.ID, a.ID, b.ID} {
		_, err := noteSvc.Create(ctx, taskID, "a note")
		require.NoError(t, err)
	}

	d, err := svc.GetDashboardData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalNotes)
	assert.Equal(t, 1, d.NotesPerTask)
	assert.Equal(t, float64(0), d.CompletionRate)
}

func TestSeedDemoData(t *testing.T) {
	tasks, notes, activities, _ := newActivityFixture()
	seed := NewSeedService(tasks, notes, activities)
	ctx := context.Background()

	require.NoError(t, seed.SeedDemoData(ctx))
	count, err := tasks.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	noteCount, err := notes.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, noteCount)

	// Seeding writes no activities.
	assert.Empty(t, activities.entries)

	// A non-empty store is left untouched.
	require.NoError(t, seed.SeedDemoData(ctx))
	count, err = tasks.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestResetDemoData(t *testing.T) {
	tasks, notes, activities, svc := newActivityFixture()
	seed := NewSeedService(tasks, notes, activities)
	hub := &recordingBroadcaster{}
	taskSvc := NewTaskService(tasks, svc, hub, nil)
	ctx := context.Background()

	_, err := taskSvc.Create(ctx, "Manual task", "")
	require.NoError(t, err)
	require.NotEmpty(t, activities.entries)

	require.NoError(t, seed.ResetDemoData(ctx))

	count, err := tasks.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Empty(t, activities.entries, "reset clears the audit trail")

	list, err := taskSvc.List(ctx)
	require.NoError(t, err)
	for _, task := range list {
		assert.NotEqual(t, "Manual task", task.Title)
	}
}
