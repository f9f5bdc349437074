package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"

	"github.com/jackc/pgx/v5"
)

var errInsertFailed = errors.New("insert failed")

// In-memory stand-ins for the Postgres repos. They reproduce the store
// behavior the services rely on: pgx.ErrNoRows for unknown ids, newest-first
// ordering and the delete cascade from a task to its notes.

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]dom.Task
	notes *fakeNoteRepo
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]dom.Task{}}
}

func (r *fakeTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	if r.notes != nil {
		t.Notes = r.notes.notesOf(id)
	}
	return t, nil
}

func (r *fakeTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if r.notes != nil {
			t.Notes = r.notes.notesOf(t.ID)
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	if r.notes != nil {
		r.notes.deleteByTask(id)
	}
	return true, nil
}

func (r *fakeTaskRepo) CountAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks), nil
}

func (r *fakeTaskRepo) CountCompleted(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeTaskRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = map[string]dom.Task{}
	return nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes map[string]dom.Note
	tasks *fakeTaskRepo
}

func newFakeNoteRepo(tasks *fakeTaskRepo) *fakeNoteRepo {
	r := &fakeNoteRepo{notes: map[string]dom.Note{}, tasks: tasks}
	if tasks != nil {
		tasks.notes = r
	}
	return r
}

func (r *fakeNoteRepo) Create(ctx context.Context, n dom.Note) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[n.ID] = n
	return n, nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id string) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return dom.Note{}, pgx.ErrNoRows
	}
	return n, nil
}

func (r *fakeNoteRepo) GetWithTaskTitle(ctx context.Context, id string) (dom.Note, string, error) {
	r.mu.Lock()
	n, ok := r.notes[id]
	r.mu.Unlock()
	if !ok {
		return dom.Note{}, "", pgx.ErrNoRows
	}
	t, err := r.tasks.GetByID(ctx, n.TaskID)
	if err != nil {
		return dom.Note{}, "", err
	}
	return n, t.Title, nil
}

func (r *fakeNoteRepo) ListByTask(ctx context.Context, taskID string) ([]dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notesOfLocked(taskID), nil
}

func (r *fakeNoteRepo) UpdateContent(ctx context.Context, id, content string) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return dom.Note{}, pgx.ErrNoRows
	}
	n.Content = content
	r.notes[id] = n
	return n, nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

func (r *fakeNoteRepo) CountAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes), nil
}

func (r *fakeNoteRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = map[string]dom.Note{}
	return nil
}

func (r *fakeNoteRepo) notesOf(taskID string) []dom.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notesOfLocked(taskID)
}

func (r *fakeNoteRepo) notesOfLocked(taskID string) []dom.Note {
	out := []dom.Note{}
	for _, n := range r.notes {
		if n.TaskID == taskID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeNoteRepo) deleteByTask(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.notes {
		if n.TaskID == taskID {
			delete(r.notes, id)
		}
	}
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []dom.Activity
	failing bool
}

func (r *fakeActivityRepo) Insert(ctx context.Context, a dom.Activity) (dom.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return dom.Activity{}, errInsertFailed
	}
	r.entries = append(r.entries, a)
	return a, nil
}

func (r *fakeActivityRepo) ListRecent(ctx context.Context, limit int) ([]dom.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.Activity, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeActivityRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}

func (r *fakeActivityRepo) actions() []dom.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.ActivityAction, len(r.entries))
	for i, a := range r.entries {
		out[i] = a.Action
	}
	return out
}

// recordingBroadcaster captures event names in call order. The optional
// onEvent hook fires inside the call, which lets a test observe what the
// recorder had already persisted at broadcast time.
type recordingBroadcaster struct {
	mu      sync.Mutex
	events  []string
	onEvent func(name string)
}

func (b *recordingBroadcaster) record(name string) {
	b.mu.Lock()
	b.events = append(b.events, name)
	hook := b.onEvent
	b.mu.Unlock()
	if hook != nil {
		hook(name)
	}
}

func (b *recordingBroadcaster) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	copy(out, b.events)
	return out
}

func (b *recordingBroadcaster) TaskCreated(msg stream.TaskCreatedMessage) { b.record(stream.EventTaskCreated) }
func (b *recordingBroadcaster) TaskUpdated(msg stream.TaskUpdatedMessage) { b.record(stream.EventTaskUpdated) }
func (b *recordingBroadcaster) TaskDeleted(msg stream.TaskDeletedMessage) { b.record(stream.EventTaskDeleted) }
func (b *recordingBroadcaster) TaskCompletionChanged(msg stream.TaskCompletionChangedMessage) {
	b.record(stream.EventTaskCompletionChanged)
}
func (b *recordingBroadcaster) NoteAdded(msg stream.NoteAddedMessage)     { b.record(stream.EventNoteAdded) }
func (b *recordingBroadcaster) NoteUpdated(msg stream.NoteUpdatedMessage) { b.record(stream.EventNoteUpdated) }
func (b *recordingBroadcaster) NoteDeleted(msg stream.NoteDeletedMessage) { b.record(stream.EventNoteDeleted) }
func (b *recordingBroadcaster) ActivityUpdate(msg stream.ActivityUpdateMessage) {
	b.record(stream.EventActivityUpdate)
}
