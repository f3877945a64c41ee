package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PingHandler обрабатывает GET запрос к /api/ping
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "ok"); err != nil {
		log.Error().Err(err).Msg("failed to write ping response")
	}
}

// HealthStatus описывает состояние зависимостей сервиса.
type HealthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// HealthHandler проверяет доступность базы данных и Redis.
type HealthHandler struct {
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Timeout time.Duration
}

// NewHealthHandler создаёт новый экземпляр HealthHandler. Любая зависимость может быть nil.
func NewHealthHandler(db *pgxpool.Pool, rdb *redis.Client, timeout time.Duration) *HealthHandler {
	return &HealthHandler{DB: db, Redis: rdb, Timeout: timeout}
}

// Health обрабатывает GET запрос к /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	status := HealthStatus{Status: "healthy", Services: map[string]string{}}
	if h.DB != nil {
		status.Services["postgres"] = check(h.DB.Ping(ctx), &status)
	} else {
		status.Services["postgres"] = "disabled"
	}
	if h.Redis != nil {
		status.Services["redis"] = check(h.Redis.Ping(ctx).Err(), &status)
	} else {
		status.Services["redis"] = "disabled"
	}

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error().Err(err).Msg("failed to write health response")
	}
}

func check(err error, status *HealthStatus) string {
	if err != nil {
		status.Status = "degraded"
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}
