package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/adapter"
	"serial-story-subscription/internal/domain/ports/repository"
	"serial-story-subscription/internal/infra/logging"
)

var _ DeliveryUseCase = (*deliveryUC)(nil)

type DeliveryUseCase interface {
	// DeliverDue emails the next chapter to every active subscription whose
	// cadence has elapsed and advances its chapter counter. Returns the
	// number of chapters sent. Failures are per-subscription: one bad email
	// address does not stall the rest of the run.
	DeliverDue(ctx context.Context) (int, error)
}

type deliveryUC struct {
	subs     repository.SubscriptionRepository
	stories  repository.StoryRepository
	chapters repository.ChapterRepository
	users    repository.UserRepository
	mailer   adapter.Mailer
	cadence  time.Duration
	log      *zerolog.Logger
}

func NewDeliveryUseCase(
	subs repository.SubscriptionRepository,
	stories repository.StoryRepository,
	chapters repository.ChapterRepository,
	users repository.UserRepository,
	mailer adapter.Mailer,
	cadence time.Duration,
	logger *zerolog.Logger,
) *deliveryUC {
	l := logger.With().Str("component", "DeliveryUC").Logger()
	return &deliveryUC{
		subs:     subs,
		stories:  stories,
		chapters: chapters,
		users:    users,
		mailer:   mailer,
		cadence:  cadence,
		log:      &l,
	}
}

func (u *deliveryUC) DeliverDue(ctx context.Context) (int, error) {
	defer logging.TraceDuration(u.log, "DeliveryUC.DeliverDue")()

	active, err := u.subs.ListActive(ctx, nil)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sub := range active {
		if time.Since(sub.UpdatedAt) < u.cadence {
			continue
		}
		if err := u.deliverNext(ctx, sub); err != nil {
			u.log.Error().Err(err).Str("subscription_id", sub.ID).Msg("chapter delivery failed")
			continue
		}
		sent++
	}
	return sent, nil
}

func (u *deliveryUC) deliverNext(ctx context.Context, sub *model.Subscription) error {
	story, err := u.stories.FindByID(ctx, nil, sub.StoryID)
	if err != nil {
		return fmt.Errorf("story lookup: %w", err)
	}
	user, err := u.users.FindByID(ctx, nil, sub.UserID)
	if err != nil {
		return fmt.Errorf("user lookup: %w", err)
	}

	next := sub.CurrentChapter + 1
	chapter, err := u.chapters.FindByStoryAndPosition(ctx, nil, sub.StoryID, next)
	if err != nil {
		// Not written yet; try again on the next run.
		return fmt.Errorf("chapter %d of %s: %w", next, sub.StoryID, err)
	}

	subject := fmt.Sprintf("%s - Chapter %d: %s", story.Title, chapter.Position, chapter.Title)
	if err := u.mailer.Send(ctx, user.Email, subject, chapter.Content); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	if err := sub.Advance(story.TotalChapters); err != nil {
		return err
	}
	if err := u.subs.Update(ctx, nil, sub); err != nil {
		// The email went out but the counter did not move; the next run will
		// resend this chapter. Preferable to silently skipping one.
		return fmt.Errorf("advance chapter: %w", err)
	}

	u.log.Info().
		Str("subscription_id", sub.ID).
		Str("story_id", sub.StoryID).
		Int("chapter", chapter.Position).
		Msg("chapter delivered")
	return nil
}
