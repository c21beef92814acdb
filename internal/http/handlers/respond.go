package handlers

import (
	"strings"

	"expense_tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// envelope is the uniform response wrapper every endpoint returns.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// respondValidation reports per-field failures; the message joins them the
// way the original API did.
func respondValidation(c *gin.Context, errs []domain.FieldError) {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	c.JSON(400, envelope{Success: false, Message: strings.Join(msgs, ", "), Errors: errs})
}
