package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"
	"github.com/ecclesiahq/ecclesia-backend/internal/platform/config"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, cfg)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", limitMiddleware, h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	registerGoogleOAuthRoutes(auth, cfg, services)
}

// issueSession generates an access token and a rotated refresh token for the
// user, persists the refresh token hash, and sets the refresh cookie.
// It returns the access token.
func issueSession(
	ctx context.Context,
	c *gin.Context,
	cfg *config.Config,
	tokenService portssvc.TokenSvcFacade,
	userService portssvc.UserSvcFacade,
	user *domain.User,
) (string, error) {
	accessToken, _, err := tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", err
	}

	refreshToken, refreshExpiry, err := tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return "", err
	}

	refreshHash := utils.HashRefreshToken(refreshToken)
	if err := userService.UpdateRefreshToken(ctx, user.UserID, refreshHash, refreshExpiry); err != nil {
		return "", err
	}

	// Cookie value carries the user ID alongside the opaque token so the
	// refresh endpoint can look up the stored hash without an access token.
	cookieValue := user.UserID + ":" + refreshToken
	maxAge := int(time.Until(refreshExpiry).Seconds())
	c.SetCookie(cfg.RefreshTokenCookieName, cookieValue, maxAge, cfg.RefreshTokenCookiePath, "", cfg.IsProduction, true)

	return accessToken, nil
}

func clearRefreshCookie(c *gin.Context, cfg *config.Config) {
	c.SetCookie(cfg.RefreshTokenCookieName, "", -1, cfg.RefreshTokenCookiePath, "", cfg.IsProduction, true)
}

// splitRefreshCookie splits a refresh cookie value into user ID and token.
func splitRefreshCookie(value string) (userID, token string, ok bool) {
	return strings.Cut(value, ":")
}

// Login godoc
// @Summary User login
// @Description Authenticates a user with email and password, returns a JWT access token and sets a refresh token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	accessToken, err := issueSession(c.Request.Context(), c, h.cfg, h.tokenService, h.userService, user)
	if err != nil {
		logger.Error("Failed to issue session on login", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account with email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (e.g., email already registered)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token cookie for a new access token, rotating the refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cookieValue, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}

	userID, refreshToken, ok := splitRefreshCookie(cookieValue)
	if !ok || userID == "" || refreshToken == "" {
		clearRefreshCookie(c, h.cfg)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, refreshToken)
	if err != nil {
		clearRefreshCookie(c, h.cfg)
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired"})
			return
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	accessToken, err := issueSession(c.Request.Context(), c, h.cfg, h.tokenService, h.userService, user)
	if err != nil {
		logger.Error("Failed to issue session on refresh", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken})
}

// Logout godoc
// @Summary User logout
// @Description Clears the refresh token cookie and invalidates the stored refresh token.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if cookieValue, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil {
		if userID, _, ok := splitRefreshCookie(cookieValue); ok && userID != "" {
			if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
				// Cookie is cleared regardless; log and continue.
				logger.Warn("Failed to clear stored refresh token on logout", slog.String("error", err.Error()), slog.String("user_id", userID))
			}
		}
	}

	clearRefreshCookie(c, h.cfg)
	c.Status(http.StatusNoContent)
}
