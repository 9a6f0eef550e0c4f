package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/afrostay/hotel-booking-backend/internal/config"
	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/middleware"
	"github.com/afrostay/hotel-booking-backend/internal/models"
	"github.com/afrostay/hotel-booking-backend/internal/services"
	"github.com/afrostay/hotel-booking-backend/internal/utils"
	"github.com/afrostay/hotel-booking-backend/pkg/jwt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	jwtService            *jwt.Service
	verificationService   *services.VerificationService
	rateLimitService      *services.RateLimitService
	userRepository        *database.UserRepository
	userSessionRepository *database.UserSessionRepository
	config                *config.Config
	logger                *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	jwtService *jwt.Service,
	verificationService *services.VerificationService,
	rateLimitService *services.RateLimitService,
	userRepository *database.UserRepository,
	userSessionRepository *database.UserSessionRepository,
	cfg *config.Config,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		jwtService:            jwtService,
		verificationService:   verificationService,
		rateLimitService:      rateLimitService,
		userRepository:        userRepository,
		userSessionRepository: userSessionRepository,
		config:                cfg,
		logger:                logger,
	}
}

// RegisterRequest represents the signup request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a fresh token pair
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in_seconds"`
	User         *models.User `json:"user"`
}

// RefreshRequest represents the token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents the profile update request
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailPattern.MatchString(email) {
		respondError(c, http.StatusBadRequest, "invalid_email", "A valid email address is required")
		return
	}
	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "weak_password", "Password must be at least 8 characters")
		return
	}

	if existing, err := h.userRepository.GetByEmail(email); err == nil && existing != nil {
		respondError(c, http.StatusConflict, "email_taken", "An account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.config.Security.BcryptCost)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash password")
		respondError(c, http.StatusInternalServerError, "registration_failed", "Failed to create account")
		return
	}

	user, err := h.userRepository.CreateUser(email, string(hash))
	if err != nil {
		h.logger.WithError(err).Error("Failed to create user")
		respondError(c, http.StatusInternalServerError, "registration_failed", "Failed to create account")
		return
	}

	// Verification mail failure must not lose the account; the user can
	// request a resend
	if err := h.verificationService.SendVerification(user); err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to send verification mail")
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	respondCreated(c, "Account created. Check your email for a verification link.", user)
}

// VerifyEmail handles GET /api/v1/auth/verify-email?token=...
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		respondError(c, http.StatusBadRequest, "missing_token", "Verification token is required")
		return
	}

	user, err := h.verificationService.VerifyEmail(token)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(c, http.StatusNotFound, "invalid_token", "Verification token not found")
		case errors.Is(err, services.ErrTokenExpired):
			respondError(c, http.StatusBadRequest, "token_expired", "Verification token has expired. Please request a new one.")
		case errors.Is(err, services.ErrTokenAlreadyUsed):
			respondError(c, http.StatusBadRequest, "token_used", "Verification token has already been used")
		default:
			h.logger.WithError(err).Error("Failed to verify email")
			respondError(c, http.StatusInternalServerError, "verification_failed", "Failed to verify email")
		}
		return
	}

	respondOK(c, "Email verified successfully", user)
}

// ResendVerification handles POST /api/v1/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	user, err := h.userRepository.GetByID(userCtx.UserID)
	if err != nil {
		respondError(c, http.StatusNotFound, "user_not_found", "Account not found")
		return
	}
	if user.EmailVerified {
		respondError(c, http.StatusBadRequest, "already_verified", "Email is already verified")
		return
	}

	if err := h.rateLimitService.CheckMailRateLimit(user.ID); err != nil {
		var rateLimitErr *services.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limit_exceeded",
				"message":     rateLimitErr.Message,
				"retry_after": rateLimitErr.RetryAfter,
				"type":        rateLimitErr.Type,
			})
			return
		}
		respondError(c, http.StatusInternalServerError, "rate_limit_check_failed", "Failed to check rate limit")
		return
	}

	if err := h.verificationService.SendVerification(user); err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to resend verification mail")
		respondError(c, http.StatusInternalServerError, "mail_failed", "Failed to send verification mail")
		return
	}

	respondOK(c, "Verification email sent", nil)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.userRepository.GetByEmail(email)
	if err != nil {
		// Same response for unknown email and wrong password
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role, user.EmailVerified)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate access token")
		respondError(c, http.StatusInternalServerError, "token_generation_failed", "Failed to generate tokens")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate refresh token")
		respondError(c, http.StatusInternalServerError, "token_generation_failed", "Failed to generate tokens")
		return
	}

	h.recordSession(c, user)

	respondOK(c, "Logged in successfully", TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.config.JWT.AccessTokenExpiry.Seconds()),
		User:         user,
	})
}

// recordSession stores a login audit record. Failures are logged, never
// surfaced to the client.
func (h *AuthHandler) recordSession(c *gin.Context, user *models.User) {
	userAgent := utils.GetUserAgent(c)
	device := utils.ParseUserAgent(userAgent)

	session := &models.UserSession{
		UserID:     user.ID,
		IPAddress:  utils.GetRealIP(c),
		UserAgent:  userAgent,
		DeviceType: device.DeviceType,
		OS:         device.OS,
		Browser:    device.Browser,
	}

	if err := h.userSessionRepository.Create(session); err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to record login session")
	}
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_refresh_token", "Invalid or expired refresh token")
		return
	}

	// Reload the user so role and verification changes take effect on refresh
	user, err := h.userRepository.GetByID(claims.UserID)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "user_not_found", "Account not found")
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role, user.EmailVerified)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate access token")
		respondError(c, http.StatusInternalServerError, "token_generation_failed", "Failed to generate tokens")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate refresh token")
		respondError(c, http.StatusInternalServerError, "token_generation_failed", "Failed to generate tokens")
		return
	}

	respondOK(c, "Tokens refreshed", TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.config.JWT.AccessTokenExpiry.Seconds()),
		User:         user,
	})
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	user, err := h.userRepository.GetByID(userCtx.UserID)
	if err != nil {
		respondError(c, http.StatusNotFound, "user_not_found", "Account not found")
		return
	}

	respondOK(c, "", user)
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "first_name and last_name are required")
		return
	}

	if err := h.userRepository.UpdateProfile(userCtx.UserID, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user_not_found", "Account not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update profile")
		respondError(c, http.StatusInternalServerError, "update_failed", "Failed to update profile")
		return
	}

	user, err := h.userRepository.GetByID(userCtx.UserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "update_failed", "Failed to load updated profile")
		return
	}

	respondOK(c, "Profile updated", user)
}

// ListSessions handles GET /api/v1/auth/sessions
func (h *AuthHandler) ListSessions(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	sessions, err := h.userSessionRepository.ListByUser(userCtx.UserID, 20)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sessions")
		respondError(c, http.StatusInternalServerError, "sessions_failed", "Failed to list sessions")
		return
	}

	respondOK(c, "", sessions)
}
