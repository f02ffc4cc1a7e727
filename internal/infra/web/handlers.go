package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/infra/metrics"
	"serial-story-subscription/internal/usecase"
)

type checkoutCreateRequest struct {
	StoryID string `json:"story_id"`
	UserID  string `json:"user_id"`
}

// Handler for opening a hosted checkout session.
func checkoutCreateHandler(checkoutUC usecase.CheckoutUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req checkoutCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sess, err := checkoutUC.CreateCheckout(ctx, req.StoryID, req.UserID)
		if err != nil {
			metrics.IncCheckoutSession("failed")
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrGatewayUnavailable):
				http.Error(w, "Payment gateway unavailable", http.StatusBadGateway)
			default:
				http.Error(w, "Failed to create checkout", http.StatusInternalServerError)
			}
			return
		}
		metrics.IncCheckoutSession("created")

		response := struct {
			SessionID   string `json:"session_id"`
			CheckoutURL string `json:"checkout_url"`
		}{
			SessionID:   sess.ID,
			CheckoutURL: sess.RedirectURL,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(response)
	}
}

type verifyResponse struct {
	Success    bool   `json:"success"`
	StoryTitle string `json:"story_title,omitempty"`
	Amount     int64  `json:"amount,omitempty"`
	Already    bool   `json:"already_active,omitempty"`
	Pending    bool   `json:"activation_pending,omitempty"`
	Error      string `json:"error,omitempty"`
	Status     string `json:"payment_status,omitempty"`
}

// paymentVerifyHandler confirms a checkout session and reports the receipt.
// Repeating the call with the same session id is safe; the use case is
// idempotent.
func paymentVerifyHandler(paymentUC usecase.PaymentUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			metrics.PaymentVerifyRequests.WithLabelValues("fail", "missing_session").Inc()
			writeJSON(w, http.StatusBadRequest, verifyResponse{Error: "session_id is required"})
			return
		}

		result, err := paymentUC.VerifyAndActivate(ctx, sessionID)
		outcome := "ok"
		defer func() {
			metrics.PaymentVerifyDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		}()

		if err != nil {
			var incomplete *domain.PaymentIncompleteError
			switch {
			case errors.As(err, &incomplete):
				outcome = "fail"
				metrics.PaymentVerifyRequests.WithLabelValues("fail", "not_paid").Inc()
				writeJSON(w, http.StatusBadRequest, verifyResponse{
					Error:  "payment not completed",
					Status: incomplete.Status,
				})
			case errors.Is(err, domain.ErrActivationConflict):
				// Payment is confirmed; the write just has not landed. 202 tells
				// the confirmation page to retry the same URL.
				metrics.PaymentVerifyRequests.WithLabelValues("fail", "activation_conflict").Inc()
				resp := verifyResponse{Success: true, Pending: true}
				if result != nil {
					resp.StoryTitle = result.StoryTitle
					resp.Amount = result.Amount
				}
				writeJSON(w, http.StatusAccepted, resp)
			case errors.Is(err, domain.ErrGatewayUnavailable):
				outcome = "fail"
				metrics.PaymentVerifyRequests.WithLabelValues("fail", "gateway_error").Inc()
				writeJSON(w, http.StatusBadGateway, verifyResponse{Error: "payment gateway unavailable"})
			case errors.Is(err, domain.ErrInvalidArgument):
				outcome = "fail"
				metrics.PaymentVerifyRequests.WithLabelValues("fail", "missing_session").Inc()
				writeJSON(w, http.StatusBadRequest, verifyResponse{Error: "session_id is required"})
			default:
				// Unknown session, stale metadata, anything else: one opaque
				// answer, no detail for probers.
				outcome = "fail"
				metrics.PaymentVerifyRequests.WithLabelValues("fail", "unknown_session").Inc()
				logger.Warn().Err(err).Str("session_id", sessionID).Msg("verification rejected")
				writeJSON(w, http.StatusNotFound, verifyResponse{Error: "could not verify payment"})
			}
			return
		}

		if !result.AlreadyActive {
			metrics.IncSubscriptionsActivated()
		}
		metrics.PaymentVerifyRequests.WithLabelValues("ok", "").Inc()
		writeJSON(w, http.StatusOK, verifyResponse{
			Success:    true,
			StoryTitle: result.StoryTitle,
			Amount:     result.Amount,
			Already:    result.AlreadyActive,
		})
	}
}

// storiesListHandler serves the published catalog.
func storiesListHandler(storyUC usecase.StoryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stories, err := storyUC.ListPublished(r.Context())
		if err != nil {
			http.Error(w, "Failed to list stories", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.Story `json:"data"`
		}{
			Data: stories,
		}
		writeJSON(w, http.StatusOK, response)
	}
}

func storyGetHandler(storyUC usecase.StoryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		story, err := storyUC.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get story", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, story)
	}
}

type userRegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func userRegisterHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := userUC.Register(r.Context(), req.Email, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrAlreadyExists):
				http.Error(w, "Email already registered", http.StatusConflict)
			default:
				http.Error(w, "Failed to register user", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func subscriptionsListHandler(subUC usecase.SubscriptionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "id")

		views, err := subUC.ListByUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, "User ID is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to list subscriptions", http.StatusInternalServerError)
			return
		}

		type item struct {
			Subscription  *model.Subscription `json:"subscription"`
			StoryTitle    string              `json:"story_title"`
			TotalChapters int                 `json:"total_chapters"`
		}
		data := make([]item, 0, len(views))
		for _, v := range views {
			data = append(data, item{
				Subscription:  v.Subscription,
				StoryTitle:    v.StoryTitle,
				TotalChapters: v.TotalChapters,
			})
		}

		response := struct {
			Data []item `json:"data"`
		}{
			Data: data,
		}
		writeJSON(w, http.StatusOK, response)
	}
}

type subscriptionCancelRequest struct {
	UserID string `json:"user_id"`
}

func subscriptionCancelHandler(subUC usecase.SubscriptionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subID := chi.URLParam(r, "id")

		var req subscriptionCancelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := subUC.Cancel(r.Context(), req.UserID, subID); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			default:
				http.Error(w, "Failed to cancel subscription", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
