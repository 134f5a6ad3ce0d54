package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status     string    `json:"status"`
	Database   string    `json:"database"`
	CheckedAt  time.Time `json:"checked_at"`
	DurationMs int64     `json:"duration_ms"`
}

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// pingHandler is the liveness probe: the process is up.
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "pong"})
}

// healthCheckHandler is the readiness probe: the database answers a ping.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)

	resp := HealthResponse{
		Status:     "healthy",
		Database:   "up",
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}

	statusCode := http.StatusOK
	if err != nil {
		resp.Status = "unhealthy"
		resp.Database = "down"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
