package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
)

var _ repository.AdminActionRepository = (*adminActionRepo)(nil)

type adminActionRepo struct {
	pool *pgxpool.Pool
}

func NewAdminActionRepo(pool *pgxpool.Pool) *adminActionRepo {
	return &adminActionRepo{pool: pool}
}

func (r *adminActionRepo) Insert(ctx context.Context, tx repository.Tx, a *model.AdminAction) error {
	const q = `
INSERT INTO admin_actions (
  id, admin_id, action, target_type, target_id, created_at
) VALUES ($1,$2,$3,$4,$5,$6);`

	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.AdminID, a.Action, a.TargetType, a.TargetID, a.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *adminActionRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.AdminAction, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, admin_id, action, target_type, target_id, created_at
FROM admin_actions ORDER BY id DESC LIMIT $1;`

	rows, err := queryRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AdminAction
	for rows.Next() {
		a := &model.AdminAction{}
		if err := rows.Scan(&a.ID, &a.AdminID, &a.Action, &a.TargetType, &a.TargetID, &a.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
