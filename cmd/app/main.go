package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serial-story-subscription/internal/config"
	pg "serial-story-subscription/internal/infra/db/postgres"
	"serial-story-subscription/internal/infra/logging"
	"serial-story-subscription/internal/infra/mail"
	"serial-story-subscription/internal/infra/metrics"
	"serial-story-subscription/internal/infra/payment"
	red "serial-story-subscription/internal/infra/redis"
	"serial-story-subscription/internal/infra/sched"
	"serial-story-subscription/internal/infra/web"
	"serial-story-subscription/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed redaction)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	storyRepo := pg.NewStoryRepoCacheDecorator(pg.NewStoryRepo(pool), redisClient, cfg.Redis.TTL)
	chapterRepo := pg.NewChapterRepo(pool)
	userRepo := pg.NewUserRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	auditRepo := pg.NewAdminActionRepo(pool)

	// ---- Payment gateway ----
	gateway, err := payment.NewStripeGateway(cfg.Payment.Stripe.SecretKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("stripe gateway")
	}
	successURL := cfg.Payment.Stripe.AppBaseURL + cfg.Payment.Stripe.SuccessPath + "?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := cfg.Payment.Stripe.AppBaseURL + cfg.Payment.Stripe.CancelPath

	// ---- Mailer ----
	mailer := mail.NewSMTPMailer(&cfg.Mail, logger)

	// ---- Use cases ----
	checkoutUC := usecase.NewCheckoutUseCase(storyRepo, userRepo, gateway, cfg.Payment.Stripe.Currency, successURL, cancelURL, logger)
	paymentUC := usecase.NewPaymentUseCase(gateway, subRepo, storyRepo, userRepo, logger)
	storyUC := usecase.NewStoryUseCase(storyRepo, auditRepo, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo, storyRepo, logger)
	userUC := usecase.NewUserUseCase(userRepo)
	statsUC := usecase.NewStatsUseCase(userRepo, storyRepo, subRepo, auditRepo)
	deliveryUC := usecase.NewDeliveryUseCase(subRepo, storyRepo, chapterRepo, userRepo, mailer, cfg.Delivery.Cadence, logger)

	// ---- Chapter delivery worker ----
	worker := sched.NewDeliveryWorker(cfg.Delivery.Interval, deliveryUC, statsUC, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- HTTP server ----
	srv := web.NewServer(checkoutUC, paymentUC, storyUC, subUC, userUC, statsUC, cfg.Server.AdminAPIKey, logger)
	handler := srv.Routes(
		web.Recover(logger),
		web.TraceID(),
		web.RequestLog(logger),
		web.Timeout(cfg.Server.CallTimeout),
		web.RateLimit(rateLimiter, 120, time.Minute, logger),
	)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}
	cancel()
}
