package handler

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"filedex/internal/httputil"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	pool *pgxpool.Pool
}

// NewHealthHandler creates a health handler bound to the database pool
func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Check responds 200 when the database is reachable
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Ping(r.Context()); err != nil {
		httputil.RespondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
