package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsaito/project-tracking-api/internal/auth"
	"github.com/hsaito/project-tracking-api/internal/config"
	"github.com/hsaito/project-tracking-api/internal/dto"
	apierrors "github.com/hsaito/project-tracking-api/internal/errors"
	"github.com/hsaito/project-tracking-api/internal/middleware"
	"github.com/hsaito/project-tracking-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	cookies     auth.CookieSettings
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies: auth.CookieSettings{
			Secure: cfg.CookieSecure,
			Domain: cfg.CookieDomain,
		},
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// Register creates a new user and opens a session.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
		Gender    string `json:"gender"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid birth date")
			return
		}
		birthDate = &parsed
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.setSessionCookies(c, user.ID) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// Login authenticates a user and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.setSessionCookies(c, user.ID) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// Logout revokes the refresh token and clears both cookies. It succeeds
// even when the cookie is missing or the token is no longer valid.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(auth.RefreshTokenCookie)
	h.authService.Logout(refreshToken)

	auth.ClearTokenCookies(c, h.cookies)

	c.JSON(http.StatusResetContent, gin.H{
		"detail": "Logout successful",
	})
}

// Refresh mints a new access token from the refresh cookie. The refresh
// token is not rotated.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(auth.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		apierrors.Unauthorized(c, "Refresh token missing")
		return
	}

	accessToken, err := h.authService.RefreshAccess(refreshToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	auth.SetTokenCookie(c, auth.AccessTokenCookie, accessToken, int(h.accessTTL.Seconds()), h.cookies)

	c.JSON(http.StatusOK, gin.H{
		"detail": "Access token refreshed",
	})
}

// GetCurrentUser returns the authenticated user's profile.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, userID uint64) bool {
	accessToken, refreshToken, err := h.authService.IssueSession(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue session")
		return false
	}

	auth.SetTokenCookie(c, auth.AccessTokenCookie, accessToken, int(h.accessTTL.Seconds()), h.cookies)
	auth.SetTokenCookie(c, auth.RefreshTokenCookie, refreshToken, int(h.refreshTTL.Seconds()), h.cookies)
	return true
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidRefreshToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
