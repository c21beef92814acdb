package handlers

import (
	"net/http"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/logger"

	"github.com/gin-gonic/gin"
)

// Dashboard assembles the overview, current-month summary, category
// breakdown, six-month trend, recent transactions and daily spending in
// one response.
func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	stats, err := h.Stats.Dashboard(ctx, userID, time.Now())
	if err != nil {
		logger.Error("dashboard failed", "error", err, "user_id", userID)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondData(c, http.StatusOK, stats)
}

// Categories lists the fixed category set clients build pickers from.
func (h *Handler) Categories(c *gin.Context) {
	respondData(c, http.StatusOK, gin.H{"categories": domain.Categories})
}
