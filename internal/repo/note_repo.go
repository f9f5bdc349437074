package repo

import (
	"context"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NoteRepo interface {
	Create(ctx context.Context, n dom.Note) (dom.Note, error)
	GetByID(ctx context.Context, id string) (dom.Note, error)
	// GetWithTaskTitle returns the note together with its owning task's
	// title. Callers that audit a note mutation need the title before the
	// note row (and its join to the task) is gone.
	GetWithTaskTitle(ctx context.Context, id string) (dom.Note, string, error)
	ListByTask(ctx context.Context, taskID string) ([]dom.Note, error)
	UpdateContent(ctx context.Context, id, content string) (dom.Note, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountAll(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type PGNoteRepo struct {
	db *pgxpool.Pool
}

func NewPGNoteRepo(db *pgxpool.Pool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

func (r *PGNoteRepo) Create(ctx context.Context, n dom.Note) (dom.Note, error) {
	query := `
		INSERT INTO notes (id, task_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, task_id, content, created_at`
	var out dom.Note
	err := r.db.QueryRow(ctx, query, n.ID, n.TaskID, n.Content, n.CreatedAt).Scan(
		&out.ID, &out.TaskID, &out.Content, &out.CreatedAt,
	)
	return out, err
}

func (r *PGNoteRepo) GetByID(ctx context.Context, id string) (dom.Note, error) {
	query := `SELECT id, task_id, content, created_at FROM notes WHERE id = $1`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, id).Scan(&n.ID, &n.TaskID, &n.Content, &n.CreatedAt)
	return n, err
}

func (r *PGNoteRepo) GetWithTaskTitle(ctx context.Context, id string) (dom.Note, string, error) {
	query := `
		SELECT n.id, n.task_id, n.content, n.created_at, t.title
		FROM notes n
		JOIN tasks t ON t.id = n.task_id
		WHERE n.id = $1`
	var n dom.Note
	var title string
	err := r.db.QueryRow(ctx, query, id).Scan(&n.ID, &n.TaskID, &n.Content, &n.CreatedAt, &title)
	if err != nil {
		return dom.Note{}, "", err
	}
	return n, title, nil
}

func (r *PGNoteRepo) ListByTask(ctx context.Context, taskID string) ([]dom.Note, error) {
	query := `
		SELECT id, task_id, content, created_at
		FROM notes WHERE task_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Note{}
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.TaskID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *PGNoteRepo) UpdateContent(ctx context.Context, id, content string) (dom.Note, error) {
	query := `
		UPDATE notes SET content = $2
		WHERE id = $1
		RETURNING id, task_id, content, created_at`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, id, content).Scan(&n.ID, &n.TaskID, &n.Content, &n.CreatedAt)
	return n, err
}

func (r *PGNoteRepo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PGNoteRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n)
	return n, err
}

func (r *PGNoteRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM notes`)
	return err
}
