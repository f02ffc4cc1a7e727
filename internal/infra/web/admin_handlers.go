package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/usecase"
)

// adminID resolves the acting admin for the audit trail. The bearer key
// authenticates the caller but carries no identity, so ops pass theirs in a
// header.
func adminID(r *http.Request) string {
	if id := r.Header.Get("X-Admin-ID"); id != "" {
		return id
	}
	return "api"
}

// statsHandler serves the dashboard totals.
func statsHandler(statsUC usecase.StatsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := statsUC.Totals(r.Context())
		if err != nil {
			http.Error(w, "Failed to get totals", http.StatusInternalServerError)
			return
		}

		byStatus := make(map[string]int, len(totals.SubsByStatus))
		for status, n := range totals.SubsByStatus {
			byStatus[string(status)] = n
		}

		response := struct {
			TotalUsers       int            `json:"total_users"`
			PublishedStories int            `json:"published_stories"`
			SubsByStatus     map[string]int `json:"subscriptions_by_status"`
		}{
			TotalUsers:       totals.Users,
			PublishedStories: totals.PublishedStories,
			SubsByStatus:     byStatus,
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// usersListHandler returns a paginated list of users.
// It accepts 'offset' and 'limit' query parameters.
func usersListHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 50 // Default page size
		}
		if offset < 0 {
			offset = 0
		}

		users, err := userUC.List(ctx, offset, limit)
		if err != nil {
			http.Error(w, "Failed to list users", http.StatusInternalServerError)
			return
		}

		total, err := userUC.Count(ctx)
		if err != nil {
			http.Error(w, "Failed to count users", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data   []*model.User `json:"data"`
			Total  int           `json:"total"`
			Limit  int           `json:"limit"`
			Offset int           `json:"offset"`
		}{
			Data:   users,
			Total:  total,
			Limit:  limit,
			Offset: offset,
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// adminActionsHandler serves the newest audit-trail entries.
func adminActionsHandler(statsUC usecase.StatsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 50
		}

		actions, err := statsUC.RecentActions(r.Context(), limit)
		if err != nil {
			http.Error(w, "Failed to list admin actions", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.AdminAction `json:"data"`
		}{
			Data: actions,
		}
		writeJSON(w, http.StatusOK, response)
	}
}

type storyCreateRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	TotalChapters int    `json:"total_chapters"`
}

// Handler for adding a new story to the catalog. The story starts as a draft;
// publish is a separate call.
func storyCreateHandler(storyUC usecase.StoryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req storyCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		story, err := storyUC.Create(r.Context(), adminID(r), req.Title, req.Author, req.Description, req.Price, req.TotalChapters)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to create story", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, story)
	}
}

func storyPublishHandler(storyUC usecase.StoryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		story, err := storyUC.Publish(r.Context(), adminID(r), id)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "Failed to publish story", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, story)
	}
}

func storyArchiveHandler(storyUC usecase.StoryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := storyUC.Archive(r.Context(), adminID(r), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to archive story", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
