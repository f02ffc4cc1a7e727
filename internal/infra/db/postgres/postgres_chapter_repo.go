package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
)

var _ repository.ChapterRepository = (*chapterRepo)(nil)

type chapterRepo struct {
	pool *pgxpool.Pool
}

func NewChapterRepo(pool *pgxpool.Pool) *chapterRepo {
	return &chapterRepo{pool: pool}
}

func (r *chapterRepo) Save(ctx context.Context, tx repository.Tx, ch *model.Chapter) error {
	const q = `
INSERT INTO chapters (
  id, story_id, title, content, position, created_at
) VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (story_id, position) DO UPDATE SET
  title=$3, content=$4;`

	_, err := execSQL(ctx, r.pool, tx, q, ch.ID, ch.StoryID, ch.Title, ch.Content, ch.Position, ch.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *chapterRepo) FindByStoryAndPosition(ctx context.Context, tx repository.Tx, storyID string, position int) (*model.Chapter, error) {
	const q = `SELECT id, story_id, title, content, position, created_at FROM chapters WHERE story_id=$1 AND position=$2;`
	row, err := pickRow(ctx, r.pool, tx, q, storyID, position)
	if err != nil {
		return nil, err
	}
	ch := &model.Chapter{}
	if err := row.Scan(&ch.ID, &ch.StoryID, &ch.Title, &ch.Content, &ch.Position, &ch.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return ch, nil
}

func (r *chapterRepo) CountByStory(ctx context.Context, tx repository.Tx, storyID string) (int, error) {
	const q = `SELECT COUNT(*) FROM chapters WHERE story_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, storyID)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
