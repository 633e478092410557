package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
	"github.com/nepalfund/nepalfund_backend/internal/middleware"
)

// googleOAuthHandler handles Google sign-in. The ID token flow is always on;
// the authorization-code flow only when a client secret is configured.
type googleOAuthHandler struct {
	googleAuth         portssvc.GoogleAuthSvc
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

func newGoogleOAuthHandler(
	googleAuth portssvc.GoogleAuthSvc,
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleAuth:         googleAuth,
		googleOAuthService: googleOAuthService,
		tokenService:       tokenService,
	}
}

func registerGoogleOAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services.GoogleAuth, services.GoogleOAuthHandler, services.TokenService)

	auth := r.Group("/auth")
	{
		auth.POST("/google-login", h.googleLogin)
		auth.GET("/google/url", h.googleLoginURL)
		auth.POST("/google/exchange-code", h.exchangeCode)
	}
}

// googleLogin godoc
// @Summary Sign in with a Google ID token
// @Description Verifies the credential from Google Identity Services and creates, links or returns the matching account.
// @Tags oauth
// @Accept json
// @Produce json
// @Param credential body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing credential"
// @Failure 401 {object} dto.ErrorResponse "Invalid Google token"
// @Failure 409 {object} dto.ErrorResponse "Account conflict"
// @Failure 500 {object} dto.ErrorResponse "Google unreachable or store failure"
// @Router /auth/google-login [post]
func (h *googleOAuthHandler) googleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Google credential missing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Google credential is required"})
		return
	}

	user, outcome, err := h.googleAuth.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}
	respondAuthenticated(c, h.tokenService, user, outcome)
}

// googleLoginURL godoc
// @Summary Get the Google consent URL
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Failure 501 {object} dto.ErrorResponse "Authorization-code flow not configured"
// @Router /auth/google/url [get]
func (h *googleOAuthHandler) googleLoginURL(c *gin.Context) {
	if !h.googleOAuthService.Enabled() {
		c.JSON(http.StatusNotImplemented, dto.ErrorResponse{Success: false, Message: "Google authorization-code flow is not configured"})
		return
	}
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to generate OAuth state")
		return
	}
	c.JSON(http.StatusOK, dto.GoogleLoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// exchangeCode godoc
// @Summary Exchange an authorization code
// @Description Exchanges the code for Google tokens and signs in with the returned ID token.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 501 {object} dto.ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	idToken, err := h.googleOAuthService.ExchangeCodeForIDToken(ctx, req.Code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code")
		return
	}

	user, outcome, err := h.googleAuth.GoogleLogin(ctx, idToken)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}
	respondAuthenticated(c, h.tokenService, user, outcome)
}
