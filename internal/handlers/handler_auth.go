package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
	"github.com/nepalfund/nepalfund_backend/internal/middleware"
	"github.com/nepalfund/nepalfund_backend/pkg/onboarding"
)

// authHandler serves the local credential path and the session check.
type authHandler struct {
	localAuth    portssvc.LocalAuthSvc
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(localAuth portssvc.LocalAuthSvc, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{localAuth: localAuth, userService: us, tokenService: ts}
}

func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.LocalAuth, services.User, services.TokenService)

	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.GET("/auth/check-auth", middleware.AuthMiddleware(services.TokenService), h.checkAuth)
}

// register godoc
// @Summary Register a local account
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.localAuth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	respondAuthenticated(c, h.tokenService, user, "")
}

// login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed JSON"
// @Failure 401 {object} dto.ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.localAuth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	respondAuthenticated(c, h.tokenService, user, "")
}

// checkAuth godoc
// @Summary Check the current session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.CheckAuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/check-auth [get]
func (h *authHandler) checkAuth(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Session user lookup failed")
		return
	}
	c.JSON(http.StatusOK, dto.CheckAuthResponse{
		Success:         true,
		IsAuthenticated: true,
		User:            dto.ToUserSummary(user),
	})
}

// respondAuthenticated issues a session token and tells the client where to go next.
func respondAuthenticated(c *gin.Context, tokens portssvc.TokenSvcFacade, user *domain.User, outcome domain.ReconcileOutcome) {
	ctx := c.Request.Context()
	token, _, err := tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate access token")
		return
	}

	middleware.GetLoggerFromCtx(ctx).Info("User authenticated",
		slog.String("user_id", user.UserID),
		slog.Bool("profile_completed", user.ProfileCompleted))

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		User:    dto.ToUserSummary(user),
		Token:   token,
		Outcome: string(outcome),
		Next:    onboarding.Route(dto.ToSession(user, token)),
	})
}
