package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
	"serial-story-subscription/internal/infra/metrics"
	red "serial-story-subscription/internal/infra/redis"

	"github.com/go-redis/redis/v8"
)

var _ repository.StoryRepository = (*storyRepoCacheDecorator)(nil)

// storyRepoCacheDecorator caches story reads in Redis. The catalog is
// read on every checkout and payment verification but changes only when
// an admin publishes or archives, so a modest TTL keeps it fresh.
type storyRepoCacheDecorator struct {
	inner repository.StoryRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewStoryRepoCacheDecorator(inner repository.StoryRepository, cache red.RedisClient, ttl time.Duration) repository.StoryRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &storyRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func (d *storyRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Story, error) {
	key := fmt.Sprintf("story:%s", id)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("story", "hit")
		var story model.Story
		if json.Unmarshal([]byte(val), &story) == nil {
			return &story, nil
		}
	} else if err != redis.Nil {
		metrics.IncCacheRequest("story", "error")
	}

	metrics.IncCacheRequest("story", "miss")
	story, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if story != nil {
		bytes, _ := json.Marshal(story)
		d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return story, nil
}

func (d *storyRepoCacheDecorator) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Story, error) {
	key := "stories:published"
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("story_list", "hit")
		var stories []*model.Story
		if json.Unmarshal([]byte(val), &stories) == nil {
			return stories, nil
		}
	}

	metrics.IncCacheRequest("story_list", "miss")
	stories, err := d.inner.ListPublished(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(stories) > 0 {
		bytes, _ := json.Marshal(stories)
		d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return stories, nil
}

func (d *storyRepoCacheDecorator) CountPublished(ctx context.Context, tx repository.Tx) (int, error) {
	return d.inner.CountPublished(ctx, tx)
}

// Writes invalidate both the per-story entry and the published list.
func (d *storyRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, story *model.Story) error {
	d.cache.Del(ctx, fmt.Sprintf("story:%s", story.ID))
	d.cache.Del(ctx, "stories:published")
	return d.inner.Save(ctx, tx, story)
}

func (d *storyRepoCacheDecorator) Archive(ctx context.Context, tx repository.Tx, id string) error {
	d.cache.Del(ctx, fmt.Sprintf("story:%s", id))
	d.cache.Del(ctx, "stories:published")
	return d.inner.Archive(ctx, tx, id)
}
