package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"
	"github.com/ecclesiahq/ecclesia-backend/internal/platform/config"

	"github.com/gin-gonic/gin"
)

const oauthStateCookieName = "g_oauth_state"
const oauthStateCookieMaxAge = 600 // 10 minutes

// GoogleOAuthHandler handles Google OAuth related requests.
// It supports both the server-side redirect flow (login/callback) and the
// client-side flow where the frontend obtains an ID token directly.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the public auth group.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token, cfg)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/login", h.LoginGoogle)
		googleRoutes.GET("/callback", h.CallbackGoogle)
		googleRoutes.POST("/token-signin", h.TokenSignInGoogle)
	}
}

// LoginGoogle godoc
// @Summary Start Google OAuth login
// @Description Redirects the user to Google's consent page with a CSRF state cookie.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state string", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	c.SetCookie(oauthStateCookieName, state, oauthStateCookieMaxAge, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Handles the redirect back from Google, verifies state, exchanges the code, signs the user in, and redirects to the frontend with an access token.
// @Tags oauth
// @Success 307 "Redirect to frontend"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie == "" || c.Query("state") != stateCookie {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	// State is single-use
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	userInfo, err := h.googleOAuthService.GetUserInfo(ctx, oauth2Token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user information from Google"})
		return
	}

	_, accessToken, err := h.signInGoogleUser(c, *userInfo)
	if err != nil {
		// signInGoogleUser already wrote the response
		return
	}

	redirectURL := h.cfg.FrontendBaseURL + "/auth/callback?token=" + url.QueryEscape(accessToken)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// TokenSignInGoogle godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google ID token obtained client-side and signs the user in, creating an account on first sign-in.
// @Tags oauth
// @Accept json
// @Produce json
// @Param tokenSignIn body dto.GoogleTokenSignInRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/token-signin [post]
func (h *GoogleOAuthHandler) TokenSignInGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleTokenSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	picture, _ := payload.Claims["picture"].(string)

	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Essential user information missing from Google token"})
		return
	}

	userInfo := domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		VerifiedEmail: emailVerified,
		Name:          name,
		Picture:       picture,
	}

	user, accessToken, err := h.signInGoogleUser(c, userInfo)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}

// signInGoogleUser finds or creates the user for a verified Google profile and
// issues a session. On failure it writes the error response and returns the error.
func (h *GoogleOAuthHandler) signInGoogleUser(c *gin.Context, info domain.GoogleUserInfo) (*domain.User, string, error) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		logger.Error("Failed to find or create Google user", slog.String("error", err.Error()), slog.String("google_user_id", info.ID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process user authentication"})
		return nil, "", err
	}

	accessToken, err := issueSession(ctx, c, h.cfg, h.tokenService, h.userService, user)
	if err != nil {
		logger.Error("Failed to issue session for Google user", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return nil, "", err
	}

	logger.Info("User signed in via Google", slog.String("user_id", user.UserID))
	return user, accessToken, nil
}
