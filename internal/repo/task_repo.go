package repo

import (
	"context"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id string) (dom.Task, error)
	List(ctx context.Context) ([]dom.Task, error)
	Update(ctx context.Context, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountAll(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (id, title, description, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, is_completed, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.IsCompleted, t.CreatedAt, t.UpdatedAt).Scan(
		&out.ID, &out.Title, &out.Description, &out.IsCompleted, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id string) (dom.Task, error) {
	query := `
		SELECT id, title, description, is_completed, created_at, updated_at
		FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return dom.Task{}, err
	}
	notes, err := r.notesByTask(ctx, id)
	if err != nil {
		return dom.Task{}, err
	}
	t.Notes = notes
	return t, nil
}

func (r *PGTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	query := `
		SELECT id, title, description, is_completed, created_at, updated_at
		FROM tasks ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Notes = []dom.Note{}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	notes, err := r.allNotes(ctx)
	if err != nil {
		return nil, err
	}
	byTask := make(map[string][]dom.Note, len(list))
	for _, n := range notes {
		byTask[n.TaskID] = append(byTask[n.TaskID], n)
	}
	for i := range list {
		if ns, ok := byTask[list[i].ID]; ok {
			list[i].Notes = ns
		}
	}
	return list, nil
}

func (r *PGTaskRepo) Update(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $2, description = $3, is_completed = $4, updated_at = $5
		WHERE id = $1
		RETURNING id, title, description, is_completed, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.IsCompleted, t.UpdatedAt).Scan(
		&out.ID, &out.Title, &out.Description, &out.IsCompleted, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

// Delete removes the task; its notes go with it via ON DELETE CASCADE.
func (r *PGTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PGTaskRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

func (r *PGTaskRepo) CountCompleted(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE is_completed`).Scan(&n)
	return n, err
}

func (r *PGTaskRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks`)
	return err
}

func (r *PGTaskRepo) notesByTask(ctx context.Context, taskID string) ([]dom.Note, error) {
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

func (r *PGTaskRepo) allNotes(ctx context.Context) ([]dom.Note, error) {
	query := `SELECT id, task_id, content, created_at FROM notes ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Note
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.TaskID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
