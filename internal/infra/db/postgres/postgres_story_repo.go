package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
)

// Ensure storyRepo implements repository.StoryRepository
var _ repository.StoryRepository = (*storyRepo)(nil)

type storyRepo struct {
	pool *pgxpool.Pool
}

func NewStoryRepo(pool *pgxpool.Pool) *storyRepo {
	return &storyRepo{pool: pool}
}

const storyColumns = `id, title, author, description, price, total_chapters, status, created_at, updated_at`

func (r *storyRepo) Save(ctx context.Context, tx repository.Tx, s *model.Story) error {
	const q = `
INSERT INTO stories (
  id, title, author, description, price, total_chapters, status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  title=$2, author=$3, description=$4, price=$5, total_chapters=$6, status=$7, updated_at=$9;`

	_, err := execSQL(ctx, r.pool, tx, q, s.ID, s.Title, s.Author, s.Description, s.Price, s.TotalChapters, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *storyRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Story, error) {
	const q = `SELECT ` + storyColumns + ` FROM stories WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanStory(row)
}

func (r *storyRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Story, error) {
	const q = `SELECT ` + storyColumns + ` FROM stories WHERE status='published' ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	var out []*model.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *storyRepo) CountPublished(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(*) FROM stories WHERE status='published';`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func (r *storyRepo) Archive(ctx context.Context, tx repository.Tx, id string) error {
	const q = `UPDATE stories SET status='archived', updated_at=NOW() WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStory(row pgx.Row) (*model.Story, error) {
	s := &model.Story{}
	if err := row.Scan(&s.ID, &s.Title, &s.Author, &s.Description, &s.Price, &s.TotalChapters, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}
