package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/repository"

	"github.com/gin-gonic/gin"
)

// Pagination is the listing metadata block.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// NewPagination computes the metadata for one page of a result set.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// parseListFilter reads the listing query params. The legacy "All"
// sentinel on category/type maps to "no filter"; it cannot collide with a
// real category since the fixed set has no such entry.
func parseListFilter(c *gin.Context) repository.ListFilter {
	f := repository.ListFilter{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "date"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      1,
		Limit:     20,
	}

	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}

	if v := c.Query("category"); v != "" && v != "All" {
		f.Category = &v
	}
	if v := c.Query("type"); v != "" && v != "All" {
		f.Type = &v
	}

	if v := c.Query("startDate"); v != "" {
		if t, err := domain.ParseDate(v); err == nil {
			f.StartDate = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := domain.ParseDate(v); err == nil {
			// a bare date means "through the end of that day"
			if len(v) == len("2006-01-02") {
				t = t.Add(24*time.Hour - time.Millisecond)
			}
			f.EndDate = &t
		}
	}

	if v := c.Query("minAmount"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinAmount = &n
		}
	}
	if v := c.Query("maxAmount"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxAmount = &n
		}
	}

	return f
}

// ListTransactions returns one filtered, sorted page plus pagination
// metadata.
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := parseListFilter(c)

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	items, total, err := h.Transactions.List(ctx, userID, filter)
	if err != nil {
		logger.Error("list transactions failed", "error", err, "user_id", userID)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"transactions": items,
		"pagination":   NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetTransaction fetches a single owned transaction.
func (h *Handler) GetTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	tx, err := h.Transactions.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		logger.Error("get transaction failed", "error", err, "user_id", userID)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondData(c, http.StatusOK, gin.H{"transaction": tx})
}

// CreateTransaction validates and stores a new record for the caller.
func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input domain.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := input.Validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	tx := input.ToTransaction(userID, time.Now())

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	if err := h.Transactions.Create(ctx, tx); err != nil {
		logger.Error("create transaction failed", "error", err, "user_id", userID)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(c, http.StatusCreated, "Transaction created successfully", gin.H{"transaction": tx})
}

// UpdateTransaction replaces every editable field of an owned record.
// Callers send the full field set; this is a wholesale replace, not a
// patch.
func (h *Handler) UpdateTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	var input domain.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := input.Validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	tx := input.ToTransaction(userID, time.Now())
	tx.ID = id

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	if err := h.Transactions.Update(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		logger.Error("update transaction failed", "error", err, "user_id", userID)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(c, http.StatusOK, "Transaction updated successfully", gin.H{"transaction": tx})
}

// DeleteTransaction removes an owned record permanently.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	if err := h.Transactions.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		logger.Error("delete transaction failed", "error", err, "user_id", userID)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(c, http.StatusOK, "Transaction deleted successfully", gin.H{})
}
