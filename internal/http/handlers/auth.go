package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/repository"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name          string  `json:"name"`
	Currency      string  `json:"currency"`
	MonthlyBudget float64 `json:"monthlyBudget"`
}

func (req *RegisterRequest) validate() []domain.FieldError {
	var errs []domain.FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "Name is required"})
	} else if len(name) > 50 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "Name cannot exceed 50 characters"})
	}

	if !emailRE.MatchString(req.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "Please provide a valid email"})
	}

	if len(req.Password) < 6 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}

	return errs
}

// Register creates an account and signs the new user in.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		logger.Error("password hash failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Currency:     "USD",
	}

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			respondError(c, http.StatusBadRequest, "An account with this email already exists")
			return
		}
		logger.Error("create user failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		logger.Error("token generation failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(c, http.StatusCreated, "Account created successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login authenticates an existing account. Unknown email and wrong
// password produce the same response on purpose.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Error("login lookup failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if !service.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		logger.Error("token generation failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid token. Please login again.")
			return
		}
		logger.Error("me lookup failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile replaces name, currency and monthly budget.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondValidation(c, []domain.FieldError{{Field: "name", Message: "Name is required"}})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	ctx, cancel := h.queryCtx(c)
	defer cancel()

	user, err := h.Users.UpdateProfile(ctx, userID, name, currency, req.MonthlyBudget)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid token. Please login again.")
			return
		}
		logger.Error("profile update failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}
