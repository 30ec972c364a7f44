package handlers

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/utils"
)

type HealthHandler struct {
	db *pgxpool.Pool
}

func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status          string    `json:"status"`
	Timestamp       string    `json:"timestamp"`
	Database        string    `json:"database,omitempty"`
	DBTime          time.Time `json:"db_time,omitzero"`
	LatestMigration *uint     `json:"latest_migration"`
	Error           string    `json:"error,omitempty"`
}

// Health обрабатывает GET /health - проверка доступности процесса и БД
func (h *HealthHandler) Health(ctx *fasthttp.RequestCtx) {
	var dbTime time.Time
	err := h.db.QueryRow(ctx, "SELECT NOW()").Scan(&dbTime)
	if err != nil {
		utils.LogError("Health", "БД недоступна", err)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(healthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().Format(time.RFC3339),
			Error:     err.Error(),
		})
		return
	}

	// Версия последней применённой миграции, если таблица schema_migrations есть
	var latestMigration *uint
	var version uint
	if err := h.db.QueryRow(ctx, "SELECT version FROM schema_migrations LIMIT 1").Scan(&version); err == nil {
		latestMigration = &version
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(healthResponse{
		Status:          "healthy",
		Timestamp:       time.Now().Format(time.RFC3339),
		Database:        "connected",
		DBTime:          dbTime,
		LatestMigration: latestMigration,
	})
}
