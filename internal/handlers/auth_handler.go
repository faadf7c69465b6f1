package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// AuthHandler handles registration, OTP verification and the token
// lifecycle.
type AuthHandler struct {
	userService     services.UserServicer
	otpService      services.OTPServicer
	activityService services.ActivityServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, otpService services.OTPServicer, activityService services.ActivityServicer) *AuthHandler {
	return &AuthHandler{
		userService:     userService,
		otpService:      otpService,
		activityService: activityService,
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=64"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	TelegramChatID string `json:"telegram_chat_id" binding:"required,max=32"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OTPRequest carries a username and the candidate one-time code.
type OTPRequest struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required,len=6,numeric"`
}

// UsernameRequest carries only a username, for OTP reissue flows.
type UsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ResetPasswordRequest carries a reset token and the new password.
type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	IsVerified bool   `json:"is_verified"`
}

// TokenResponse represents an issued token pair.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"is_verified": user.IsVerified,
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register handles user registration
// @Summary     Register a new user
// @Description Create an account and send a verification code to the user's Telegram chat
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} UserResponse "User created, verification pending"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username or chat already registered"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Password, req.TelegramChatID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	delivered, err := h.otpService.CreateOTPForUser(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":          userJSON(user),
		"otp_delivered": delivered,
	})
}

// VerifyOTP confirms a registration code
// @Summary     Verify a registration OTP
// @Description Confirm the one-time code sent on registration and mark the account verified
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body OTPRequest true "Username and code"
// @Success     200 {object} UserResponse "Account verified"
// @Failure     400 {object} ErrorResponse "Invalid, expired or exhausted code"
// @Router      /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.otpService.VerifyOTP(user.ID, req.Code); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.MarkVerified(user.ID); err != nil {
		respondWithError(c, err)
		return
	}
	user.IsVerified = true

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// ResendOTP reissues a verification code
// @Summary     Resend the verification OTP
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body UsernameRequest true "Username"
// @Success     200 {object} map[string]bool "Delivery outcome"
// @Failure     404 {object} ErrorResponse "Unknown user"
// @Router      /auth/resend-otp [post]
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	delivered, err := h.otpService.CreateOTPForUser(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"otp_delivered": delivered})
}

// Login authenticates a verified user
// @Summary     Login
// @Description Authenticate a verified user and issue an access and refresh token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} TokenResponse "Token pair issued"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     403 {object} ErrorResponse "Account not verified"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if !h.userService.VerifyPassword(user, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if !user.IsVerified {
		respondWithError(c, apperrors.ErrUserNotVerified)
		return
	}

	accessToken, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refreshToken, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	if err := h.userService.StoreRefreshTokenHash(user.ID, hashToken(refreshToken)); err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.userService.RecordLogin(user.ID); err != nil {
		respondWithError(c, err)
		return
	}
	h.activityService.Record(user.ID, "POST /auth/login", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          userJSON(user),
	})
}

// Refresh rotates the token pair
// @Summary     Refresh tokens
// @Description Exchange a valid refresh token for a new access and refresh token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} TokenResponse "New token pair"
// @Failure     401 {object} ErrorResponse "Invalid or superseded refresh token"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	storedHash, err := h.userService.GetRefreshTokenHash(claims.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if storedHash == "" || storedHash != hashToken(req.RefreshToken) {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accessToken, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refreshToken, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if err := h.userService.StoreRefreshTokenHash(user.ID, hashToken(refreshToken)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          userJSON(user),
	})
}

// Logout invalidates the stored refresh token
// @Summary     Logout
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.StoreRefreshTokenHash(userID, ""); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ForgotPassword starts a password reset
// @Summary     Request a password reset OTP
// @Description Send a one-time code to the account's Telegram chat
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body UsernameRequest true "Username"
// @Success     200 {object} map[string]bool "Delivery outcome"
// @Failure     404 {object} ErrorResponse "Unknown user"
// @Router      /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	delivered, err := h.otpService.CreateOTPForUser(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"otp_delivered": delivered})
}

// VerifyResetOTP exchanges a reset code for a reset token
// @Summary     Verify a password reset OTP
// @Description Confirm the one-time code and issue a short-lived reset token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body OTPRequest true "Username and code"
// @Success     200 {object} map[string]string "Reset token"
// @Failure     400 {object} ErrorResponse "Invalid, expired or exhausted code"
// @Router      /auth/verify-reset-otp [post]
func (h *AuthHandler) VerifyResetOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.otpService.VerifyOTP(user.ID, req.Code); err != nil {
		respondWithError(c, err)
		return
	}

	resetToken, err := middleware.GenerateResetToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset_token": resetToken})
}

// ResetPassword completes a password reset
// @Summary     Reset the password
// @Description Set a new password using a reset token from OTP verification
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ResetPasswordRequest true "Reset token and new password"
// @Success     200 {object} map[string]string "Password updated"
// @Failure     401 {object} ErrorResponse "Invalid reset token"
// @Router      /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateResetToken(req.ResetToken)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.userService.UpdatePassword(claims.UserID, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	// A password change also ends any open session.
	if err := h.userService.StoreRefreshTokenHash(claims.UserID, ""); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// Me returns the authenticated user
// @Summary     Get the current user
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "Current user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// GetActivity lists the user's recent activity
// @Summary     Get the activity trail
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.ActivityLog] "Activity entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/activity [get]
func (h *AuthHandler) GetActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	activity, err := h.activityService.GetUserActivity(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}
