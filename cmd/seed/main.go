package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4"

	"serial-story-subscription/internal/config"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/repository"
	pg "serial-story-subscription/internal/infra/db/postgres"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	storyRepo := pg.NewStoryRepo(pool)
	chapterRepo := pg.NewChapterRepo(pool)
	txm := pg.NewTxManager(pool)

	// If the catalog is already populated, do nothing.
	existing, err := storyRepo.ListPublished(ctx, nil)
	if err != nil {
		log.Fatalf("list stories: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d stories already present. No changes.\n", len(existing))
		for _, s := range existing {
			fmt.Printf("  - %s by %s (chapters=%d, price=%d)\n", s.Title, s.Author, s.TotalChapters, s.Price)
		}
		return
	}

	// Seed a few sample serials for testing the checkout flow.
	seed := []struct {
		Title    string
		Author   string
		Desc     string
		Price    int64
		Chapters int
	}{
		{"The Lighthouse Cipher", "M. Calloway", "A cryptographer inherits a lighthouse and its secrets.", 499, 12},
		{"Iron Orchard", "T. Vance", "A family saga set in a dying steel town.", 699, 20},
		{"Letters from the Flood", "A. Okafor", "An epistolary mystery told one letter at a time.", 399, 8},
	}

	for _, s := range seed {
		story, err := model.NewStory("", s.Title, s.Author, s.Desc, s.Price, s.Chapters)
		if err != nil {
			log.Fatalf("build story %q: %v", s.Title, err)
		}
		story.Status = model.StoryStatusPublished

		// A story and its chapters land together or not at all.
		err = txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
			if err := storyRepo.Save(ctx, tx, story); err != nil {
				return fmt.Errorf("save story: %w", err)
			}
			for i := 1; i <= s.Chapters; i++ {
				ch, err := model.NewChapter(story.ID, fmt.Sprintf("Chapter %d", i), placeholderBody(s.Title, i), i)
				if err != nil {
					return fmt.Errorf("build chapter %d: %w", i, err)
				}
				if err := chapterRepo.Save(ctx, tx, ch); err != nil {
					return fmt.Errorf("save chapter %d: %w", i, err)
				}
			}
			return nil
		})
		if err != nil {
			log.Fatalf("seed %q: %v", s.Title, err)
		}
		fmt.Printf("seeded: %s (id=%s, chapters=%d, price=%d)\n", story.Title, story.ID, s.Chapters, s.Price)
	}

	fmt.Println("Seeding complete.")
}

func placeholderBody(title string, n int) string {
	return fmt.Sprintf("<h1>%s</h1><p>Installment %d of the serial. Replace with real chapter content before launch.</p>", title, n)
}
