package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/omarshaarawi/kickoffbot/internal/models"
)

type StatusReporter interface {
	Today() string
	Status() (models.HistoryRecord, bool, error)
}

type statusResponse struct {
	Date      string `json:"date"`
	Sent      bool   `json:"sent"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewRouter serves /health for liveness probes and /status for today's history entry.
func NewRouter(reporter StatusReporter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		record, ok, err := reporter.Status()
		if err != nil {
			slog.Error("Error reading history", "error", err)
			http.Error(w, "history unavailable", http.StatusServiceUnavailable)
			return
		}

		resp := statusResponse{Date: reporter.Today()}
		if ok {
			resp.Sent = record.Sent
			resp.Timestamp = record.Timestamp
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("Error encoding status", "error", err)
		}
	})

	return r
}
