// Package web exposes the HTTP surface: public checkout and verification
// routes, the story catalog, and the bearer-guarded admin API.
package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"serial-story-subscription/internal/usecase"
)

type Server struct {
	checkoutUC usecase.CheckoutUseCase
	paymentUC  usecase.PaymentUseCase
	storyUC    usecase.StoryUseCase
	subUC      usecase.SubscriptionUseCase
	userUC     usecase.UserUseCase
	statsUC    usecase.StatsUseCase
	apiKey     string
	log        *zerolog.Logger
}

func NewServer(
	checkoutUC usecase.CheckoutUseCase,
	paymentUC usecase.PaymentUseCase,
	storyUC usecase.StoryUseCase,
	subUC usecase.SubscriptionUseCase,
	userUC usecase.UserUseCase,
	statsUC usecase.StatsUseCase,
	apiKey string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		checkoutUC: checkoutUC,
		paymentUC:  paymentUC,
		storyUC:    storyUC,
		subUC:      subUC,
		userUC:     userUC,
		statsUC:    statsUC,
		apiKey:     apiKey,
		log:        logger,
	}
}

// Routes builds the router. Middlewares are passed in so tests can mount the
// routes bare.
func (s *Server) Routes(mws ...Middleware) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", checkoutCreateHandler(s.checkoutUC))
		r.Get("/payment/verify", paymentVerifyHandler(s.paymentUC, s.log))

		r.Get("/stories", storiesListHandler(s.storyUC))
		r.Get("/stories/{id}", storyGetHandler(s.storyUC))

		r.Post("/users", userRegisterHandler(s.userUC))
		r.Get("/users/{id}/subscriptions", subscriptionsListHandler(s.subUC))
		r.Post("/subscriptions/{id}/cancel", subscriptionCancelHandler(s.subUC))

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/stats", statsHandler(s.statsUC))
			r.Get("/actions", adminActionsHandler(s.statsUC))
			r.Get("/users", usersListHandler(s.userUC))
			r.Post("/stories", storyCreateHandler(s.storyUC))
			r.Post("/stories/{id}/publish", storyPublishHandler(s.storyUC))
			r.Delete("/stories/{id}", storyArchiveHandler(s.storyUC))
		})
	})

	return Chain(r, mws...)
}

// ListenAndServe runs the router with sane timeouts until the listener fails.
func (s *Server) ListenAndServe(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return srv.ListenAndServe()
}

// authMiddleware provides simple Bearer token authentication for the admin API.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("Admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}

		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
