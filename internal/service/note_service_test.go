package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteFixture struct {
	tasks      *fakeTaskRepo
	notes      *fakeNoteRepo
	activities *fakeActivityRepo
	hub        *recordingBroadcaster
	taskSvc    *TaskService
	svc        *NoteService
}

func newNoteFixture(t *testing.T) *noteFixture {
	t.Helper()
	tasks := newFakeTaskRepo()
	notes := newFakeNoteRepo(tasks)
	activities := &fakeActivityRepo{}
	hub := &recordingBroadcaster{}
	recorder := NewActivityService(activities, tasks, notes)
	return &noteFixture{
		tasks:      tasks,
		notes:      notes,
		activities: activities,
		hub:        hub,
		taskSvc:    NewTaskService(tasks, recorder, hub, nil),
		svc:        NewNoteService(notes, tasks, recorder, hub, nil),
	}
}

func (f *noteFixture) mustCreateTask(t *testing.T, title string) dom.Task {
	t.Helper()
	task, err := f.taskSvc.Create(context.Background(), title, "")
	require.NoError(t, err)
	return task
}

func TestNoteCreate(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	task := f.mustCreateTask(t, "Plan trip")

	note, err := f.svc.Create(ctx, task.ID, "book the hotel")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, task.ID, note.TaskID)
	assert.Equal(t, "book the hotel", note.Content)

	// The activity snapshots the owning task's title and quotes the note.
	last := f.activities.entries[len(f.activities.entries)-1]
	assert.Equal(t, dom.ActionNoteCreated, last.Action)
	assert.Equal(t, dom.EntityNote, last.EntityType)
	assert.Equal(t, note.ID, last.EntityID)
	assert.Equal(t, "Plan trip", last.EntityTitle)
	assert.Equal(t, "Note added: book the hotel", last.Description)

	names := f.hub.names()
	assert.Equal(t, stream.EventActivityUpdate, names[len(names)-1])
	assert.Equal(t, stream.EventNoteAdded, names[len(names)-2])
}

func TestNoteCreateUnknownTask(t *testing.T) {
	f := newNoteFixture(t)

	_, err := f.svc.Create(context.Background(), "11111111-1111-1111-1111-111111111111", "orphan")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.activities.actions())
	assert.Empty(t, f.hub.names())
}

func TestNoteCreateExcerptTruncation(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	task := f.mustCreateTask(t, "Long note holder")

	content := strings.Repeat("x", 120)
	_, err := f.svc.Create(ctx, task.ID, content)
	require.NoError(t, err)

	last := f.activities.entries[len(f.activities.entries)-1]
	assert.Equal(t, "Note added: "+strings.Repeat("x", 50), last.Description)
}

func TestNoteCreateExcerptTruncatesCharactersNotBytes(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	task := f.mustCreateTask(t, "Unicode note holder")

	// The 50th character is multibyte; a byte-based cut would split it and
	// hand the store an invalid UTF-8 description.
	content := strings.Repeat("a", 49) + "édition notes, much longer than fifty characters"
	_, err := f.svc.Create(ctx, task.ID, content)
	require.NoError(t, err)

	last := f.activities.entries[len(f.activities.entries)-1]
	assert.Equal(t, "Note added: "+strings.Repeat("a", 49)+"é", last.Description)
	assert.True(t, utf8.ValidString(last.Description))
	assert.Equal(t, 50, utf8.RuneCountInString(strings.TrimPrefix(last.Description, "Note added: ")))
}

func TestNoteUpdate(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	task := f.mustCreateTask(t, "Groceries")

	note, err := f.svc.Create(ctx, task.ID, "eggs")
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, note.ID, "eggs and butter")
	require.NoError(t, err)
	assert.Equal(t, "eggs and butter", updated.Content)

	last := f.activities.entries[len(f.activities.entries)-1]
	assert.Equal(t, dom.ActionNoteUpdated, last.Action)
	assert.Equal(t, "Note was updated in task 'Groceries'", last.Description)

	names := f.hub.names()
	assert.Equal(t, stream.EventActivityUpdate, names[len(names)-1])
	assert.Equal(t, stream.EventNoteUpdated, names[len(names)-2])
}

func TestNoteUpdateUnknown(t *testing.T) {
	f := newNoteFixture(t)

	_, err := f.svc.Update(context.Background(), "11111111-1111-1111-1111-111111111111", "content")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoteDelete(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	task := f.mustCreateTask(t, "Read book")

	note, err := f.svc.Create(ctx, task.ID, "chapter 3")
	require.NoError(t, err)

	deleted, err := f.svc.Delete(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// The title snapshot was taken while the note still existed.
	last := f.activities.entries[len(f.activities.entries)-1]
	assert.Equal(t, dom.ActionNoteDeleted, last.Action)
	assert.Equal(t, "Read book", last.EntityTitle)
	assert.Equal(t, "Note was deleted from task 'Read book'", last.Description)

	// Deleting the task's last note leaves the task itself in place.
	got, err := f.taskSvc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}

func TestNoteDeleteUnknown(t *testing.T) {
	f := newNoteFixture(t)

	deleted, err := f.svc.Delete(context.Background(), "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, f.hub.names())
}

func TestNoteListByTask(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	task := f.mustCreateTask(t, "Gather feedback")
	other := f.mustCreateTask(t, "Unrelated")

	_, err := f.svc.Create(ctx, task.ID, "ask the beta group")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, other.ID, "different task")
	require.NoError(t, err)

	list, err := f.svc.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ask the beta group", list[0].Content)
}
