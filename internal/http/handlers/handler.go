package handlers

import (
	"context"
	"time"

	"expense_tracker/internal/repository"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB           *pgxpool.Pool
	Users        *repository.UserRepository
	Transactions *repository.TransactionRepository
	Stats        *service.StatsService
	QueryTimeout time.Duration
}

func NewHandler(db *pgxpool.Pool, queryTimeout time.Duration) *Handler {
	txs := repository.NewTransactionRepository(db)
	stats := repository.NewStatsRepository(db)

	return &Handler{
		DB:           db,
		Users:        repository.NewUserRepository(db),
		Transactions: txs,
		Stats:        service.NewStatsService(stats, txs),
		QueryTimeout: queryTimeout,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	val, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}

// queryCtx bounds store work for one request. Abandoned requests do not
// cancel in-flight queries beyond this deadline.
func (h *Handler) queryCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := h.QueryTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
