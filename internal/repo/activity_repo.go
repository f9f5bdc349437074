package repo

import (
	"context"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepo is append-only: activities are never updated and only removed
// by a full demo reset.
type ActivityRepo interface {
	Insert(ctx context.Context, a dom.Activity) (dom.Activity, error)
	ListRecent(ctx context.Context, limit int) ([]dom.Activity, error)
	DeleteAll(ctx context.Context) error
}

type PGActivityRepo struct {
	db *pgxpool.Pool
}

func NewPGActivityRepo(db *pgxpool.Pool) *PGActivityRepo {
	return &PGActivityRepo{db: db}
}

func (r *PGActivityRepo) Insert(ctx context.Context, a dom.Activity) (dom.Activity, error) {
	query := `
		INSERT INTO activities (id, action, entity_type, entity_id, entity_title, description, additional_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, action, entity_type, entity_id, entity_title, description, additional_data, created_at`
	var out dom.Activity
	err := r.db.QueryRow(ctx, query,
		a.ID, string(a.Action), string(a.EntityType), a.EntityID,
		a.EntityTitle, a.Description, a.AdditionalData, a.CreatedAt,
	).Scan(
		&out.ID, &out.Action, &out.EntityType, &out.EntityID,
		&out.EntityTitle, &out.Description, &out.AdditionalData, &out.CreatedAt,
	)
	return out, err
}

func (r *PGActivityRepo) ListRecent(ctx context.Context, limit int) ([]dom.Activity, error) {
	query := `
		SELECT id, action, entity_type, entity_id, entity_title, description, additional_data, created_at
		FROM activities ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Activity{}
	for rows.Next() {
		var a dom.Activity
		if err := rows.Scan(&a.ID, &a.Action, &a.EntityType, &a.EntityID,
			&a.EntityTitle, &a.Description, &a.AdditionalData, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *PGActivityRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM activities`)
	return err
}
