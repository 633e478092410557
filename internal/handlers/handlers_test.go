package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/core/services"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
	"github.com/nepalfund/nepalfund_backend/internal/handlers"
	"github.com/nepalfund/nepalfund_backend/internal/middleware"
	"github.com/nepalfund/nepalfund_backend/internal/platform/config"
	"github.com/nepalfund/nepalfund_backend/pkg/onboarding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	cfg       *config.Config
	tokens    portssvc.TokenSvcFacade
	localAuth *MockLocalAuthService
	google    *MockGoogleAuthService
	users     *MockUserService
	campaigns *MockCampaignService
	oauth     *MockGoogleOAuthService
	photos    *MockPhotoStore
	health    *MockHealthChecker
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(handlers.RegisterValidators())
}

func (s *HandlerTestSuite) SetupTest() {
	s.cfg = &config.Config{
		IsProduction:       true,
		JWTSecret:          "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "nepalfund-test",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		UploadDir:          s.T().TempDir(),
		UploadURLPrefix:    "/uploads",
	}
	s.tokens = services.NewTokenService(s.cfg)
	s.localAuth = new(MockLocalAuthService)
	s.google = new(MockGoogleAuthService)
	s.users = new(MockUserService)
	s.campaigns = new(MockCampaignService)
	s.oauth = new(MockGoogleOAuthService)
	s.photos = new(MockPhotoStore)
	s.health = new(MockHealthChecker)

	container := &portssvc.ServiceContainer{
		LocalAuth:          s.localAuth,
		GoogleAuth:         s.google,
		User:               s.users,
		Campaign:           s.campaigns,
		TokenService:       s.tokens,
		GoogleOAuthHandler: s.oauth,
		Health:             s.health,
	}

	metrics := middleware.NewMetrics()
	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))), metrics.Middleware())
	handlers.RegisterRoutes(s.router, s.cfg, container, s.photos, metrics)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.localAuth.AssertExpectations(s.T())
	s.google.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.campaigns.AssertExpectations(s.T())
	s.oauth.AssertExpectations(s.T())
	s.photos.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// --- local auth ---

func (s *HandlerTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{FirstName: "Asha", LastName: "Gurung", Email: "asha@example.com", Password: "secret1"}
	s.localAuth.On("Register", mock.Anything, req).Return(localUser(true), nil).Once()

	w := s.do(http.MethodPost, "/register", req)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.True(resp.Success)
	s.Equal("u-1", resp.User.ID)
	s.NotEmpty(resp.Token)
	s.Equal(onboarding.PathFeed, resp.Next.Path)

	userID, err := s.tokens.ParseAccessToken(context.Background(), resp.Token)
	s.NoError(err)
	s.Equal("u-1", userID)
}

func (s *HandlerTestSuite) TestRegister_MissingEmail() {
	w := s.do(http.MethodPost, "/register", map[string]string{"firstName": "Asha", "lastName": "Gurung", "password": "secret1"})

	s.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.False(resp.Success)
	s.Equal("email is required", resp.Message)
}

func (s *HandlerTestSuite) TestRegister_BlankName() {
	w := s.do(http.MethodPost, "/register", map[string]string{"firstName": "  ", "lastName": "Gurung", "email": "a@b.com", "password": "secret1"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestRegister_Duplicate() {
	req := dto.RegisterRequest{FirstName: "Asha", LastName: "Gurung", Email: "asha@example.com", Password: "secret1"}
	s.localAuth.On("Register", mock.Anything, req).Return(nil, fmt.Errorf("register: %w", apperrors.ErrDuplicate)).Once()

	w := s.do(http.MethodPost, "/register", req)

	s.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.Contains(resp.Message, "already exists")
}

func (s *HandlerTestSuite) TestLogin_InvalidCredentials() {
	s.localAuth.On("Login", mock.Anything, "asha@example.com", "wrong").Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := s.do(http.MethodPost, "/login", dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})

	s.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Invalid email or password", resp.Message)
}

func (s *HandlerTestSuite) TestLogin_MissingPasswordIsUnauthorized() {
	s.localAuth.On("Login", mock.Anything, "asha@example.com", "").Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := s.do(http.MethodPost, "/login", map[string]string{"email": "asha@example.com"})

	s.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Invalid email or password", resp.Message)
}

func (s *HandlerTestSuite) TestLogin_IncompleteProfileRoutesToCompletion() {
	s.localAuth.On("Login", mock.Anything, "asha@example.com", "secret1").Return(localUser(false), nil).Once()

	w := s.do(http.MethodPost, "/login", dto.LoginRequest{Email: "asha@example.com", Password: "secret1"})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.False(resp.User.ProfileCompleted)
	s.Equal(onboarding.PathCompletion, resp.Next.Path)
	s.Require().NotNil(resp.Next.Prefill)
	s.Equal("asha@example.com", resp.Next.Prefill.Email)
	s.Equal("Asha", resp.Next.Prefill.GivenName)
	s.Equal("Gurung", resp.Next.Prefill.FamilyName)
}

// --- session check ---

func (s *HandlerTestSuite) TestCheckAuth() {
	token, _, err := s.tokens.GenerateAccessToken(context.Background(), localUser(true))
	s.Require().NoError(err)
	s.users.On("GetUserByID", mock.Anything, "u-1").Return(localUser(true), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/auth/check-auth", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.CheckAuthResponse
	s.decode(w, &resp)
	s.True(resp.IsAuthenticated)
	s.Equal("asha@example.com", resp.User.Email)
}

func (s *HandlerTestSuite) TestCheckAuth_NoToken() {
	w := s.do(http.MethodGet, "/auth/check-auth", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

// --- google ---

func (s *HandlerTestSuite) TestGoogleLogin_MissingCredential() {
	w := s.do(http.MethodPost, "/auth/google-login", map[string]string{})

	s.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Google credential is required", resp.Message)
}

func (s *HandlerTestSuite) TestGoogleLogin_Created() {
	u := localUser(false)
	u.AuthProvider = domain.ProviderGoogle
	s.google.On("GoogleLogin", mock.Anything, "id-token").Return(u, domain.OutcomeCreated, nil).Once()

	w := s.do(http.MethodPost, "/auth/google-login", dto.GoogleLoginRequest{Credential: "id-token"})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.Equal("created", resp.Outcome)
	s.Equal("google", resp.User.Provider)
	s.Equal(onboarding.PathCompletion, resp.Next.Path)
}

func (s *HandlerTestSuite) TestGoogleLogin_ErrorMapping() {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: audience mismatch", apperrors.ErrInvalidToken), http.StatusUnauthorized},
		{apperrors.ErrVerificationUnavailable, http.StatusInternalServerError},
		{apperrors.ErrAccountConflict, http.StatusConflict},
		{fmt.Errorf("%w: %w", apperrors.ErrAccountPersistence, errors.New("mongo: socket 10.1.1.1 closed")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.google.On("GoogleLogin", mock.Anything, "tok").Return(nil, domain.ReconcileOutcome(""), tc.err).Once()

		w := s.do(http.MethodPost, "/auth/google-login", dto.GoogleLoginRequest{Credential: "tok"})

		s.Equal(tc.status, w.Code, tc.err.Error())
		s.NotContains(w.Body.String(), "10.1.1.1")
	}
}

func (s *HandlerTestSuite) TestGoogleURL_Disabled() {
	s.oauth.On("Enabled").Return(false).Once()
	w := s.do(http.MethodGet, "/auth/google/url", nil)
	s.Equal(http.StatusNotImplemented, w.Code)
}

func (s *HandlerTestSuite) TestGoogleURL_Enabled() {
	s.oauth.On("Enabled").Return(true).Once()
	s.oauth.On("GenerateStateString", mock.Anything).Return("state-1", nil).Once()
	s.oauth.On("GetGoogleLoginURL", mock.Anything, "state-1").Return("https://accounts.google.com/o/oauth2/auth?state=state-1").Once()

	w := s.do(http.MethodGet, "/auth/google/url", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.GoogleLoginURLResponse
	s.decode(w, &resp)
	s.Equal("state-1", resp.State)
	s.Contains(resp.URL, "state=state-1")
}

func (s *HandlerTestSuite) TestExchangeCode() {
	s.oauth.On("ExchangeCodeForIDToken", mock.Anything, "code-1").Return("id-token", nil).Once()
	s.google.On("GoogleLogin", mock.Anything, "id-token").Return(localUser(true), domain.OutcomeLinked, nil).Once()

	w := s.do(http.MethodPost, "/auth/google/exchange-code", dto.ExchangeCodeRequest{Code: "code-1"})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.Equal("linked", resp.Outcome)
	s.Equal(onboarding.PathFeed, resp.Next.Path)
}

func (s *HandlerTestSuite) TestExchangeCode_InvalidCode() {
	s.oauth.On("ExchangeCodeForIDToken", mock.Anything, "bad").Return("", fmt.Errorf("%w: invalid_grant", apperrors.ErrInvalidToken)).Once()

	w := s.do(http.MethodPost, "/auth/google/exchange-code", dto.ExchangeCodeRequest{Code: "bad"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

// --- profile ---

func (s *HandlerTestSuite) TestGetProfile_NotFound() {
	s.users.On("GetProfile", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodGet, "/auth/profile?email=ghost@example.com", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestGetProfile_MissingEmail() {
	w := s.do(http.MethodGet, "/auth/profile", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) multipartProfile(fields map[string]string, photo []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		s.Require().NoError(mw.WriteField(k, v))
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "me.png")
		s.Require().NoError(err)
		_, err = fw.Write(photo)
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/auth/profile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestUpdateProfile_WithPhoto() {
	photo := []byte("png-bytes")
	s.photos.On("Save", mock.Anything, photo).Return("/uploads/profile-photos/p.png", nil).Once()
	s.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u portssvc.ProfileUpdate) bool {
		return u.Email == "asha@example.com" && u.Photo != nil && *u.Photo == "/uploads/profile-photos/p.png" &&
			u.Bio != nil && *u.Bio == "Trekker"
	})).Return(localUser(true), nil).Once()

	w := s.multipartProfile(map[string]string{"email": "asha@example.com", "bio": "Trekker"}, photo)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.UpdateProfileResponse
	s.decode(w, &resp)
	s.Require().NotNil(resp.PhotoUploaded)
	s.True(*resp.PhotoUploaded)
	s.True(resp.User.ProfileCompleted)
}

func (s *HandlerTestSuite) TestUpdateProfile_UploadFailureContinuesWithoutPhoto() {
	photo := []byte("png-bytes")
	s.photos.On("Save", mock.Anything, photo).Return("", fmt.Errorf("%w: disk full", apperrors.ErrUploadFailed)).Once()
	s.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u portssvc.ProfileUpdate) bool {
		return u.Photo == nil
	})).Return(localUser(true), nil).Once()

	w := s.multipartProfile(map[string]string{"email": "asha@example.com"}, photo)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.UpdateProfileResponse
	s.decode(w, &resp)
	s.Require().NotNil(resp.PhotoUploaded)
	s.False(*resp.PhotoUploaded)
}

func (s *HandlerTestSuite) TestUpdateProfile_RejectedPhoto() {
	photo := []byte("#!/bin/sh")
	s.photos.On("Save", mock.Anything, photo).Return("", fmt.Errorf("%w: unsupported photo type", apperrors.ErrValidation)).Once()

	w := s.multipartProfile(map[string]string{"email": "asha@example.com"}, photo)

	s.Equal(http.StatusBadRequest, w.Code)
	s.users.AssertNotCalled(s.T(), "UpdateProfile", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestUpdateProfile_NoPhoto() {
	s.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u portssvc.ProfileUpdate) bool {
		return u.FirstName != nil && *u.FirstName == "Asha" && u.LastName == nil
	})).Return(localUser(true), nil).Once()

	w := s.multipartProfile(map[string]string{"email": "asha@example.com", "firstName": "Asha"}, nil)

	s.Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "photoUploaded")
}

func (s *HandlerTestSuite) TestGoogleRegister() {
	u := localUser(true)
	u.Phone = "9841000000"
	s.users.On("CompleteGoogleProfile", mock.Anything, "asha@example.com", "Asha Gurung", "984-100-0000").Return(u, nil).Once()

	w := s.do(http.MethodPost, "/auth/google-register", dto.GoogleRegisterRequest{
		Name:        "Asha Gurung",
		PhoneNumber: "984-100-0000",
		Email:       "asha@example.com",
	})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.UpdateProfileResponse
	s.decode(w, &resp)
	s.True(resp.User.ProfileCompleted)
	s.Equal("9841000000", resp.User.Phone)
}

func (s *HandlerTestSuite) TestGoogleRegister_BadPhone() {
	w := s.do(http.MethodPost, "/auth/google-register", map[string]string{"name": "Asha", "phoneNumber": "12345", "email": "asha@example.com"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "phoneNumber")
}

func (s *HandlerTestSuite) TestGoogleRegister_NotFound() {
	s.users.On("CompleteGoogleProfile", mock.Anything, "ghost@example.com", "Ghost", "9841000000").Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodPost, "/auth/google-register", dto.GoogleRegisterRequest{Name: "Ghost", PhoneNumber: "9841000000", Email: "ghost@example.com"})
	s.Equal(http.StatusNotFound, w.Code)
}

// --- campaigns ---

func (s *HandlerTestSuite) TestCreateCampaign() {
	created := &domain.Campaign{
		CampaignID:  "c-1",
		Title:       "School roof",
		Amount:      decimal.NewFromInt(250000),
		Description: "Rebuild after monsoon",
		OwnerEmail:  "asha@example.com",
		CreatedAt:   time.Now().UTC(),
	}
	s.campaigns.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(r dto.CreateCampaignRequest) bool {
		return r.Title == "School roof" && r.Amount.Equal(decimal.NewFromInt(250000))
	})).Return(created, nil).Once()

	body := `{"title":"School roof","amount":"250000","description":"Rebuild after monsoon","email":"asha@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.CreateCampaignResponse
	s.decode(w, &resp)
	s.True(resp.Success)
	s.Equal("c-1", resp.Campaign.ID)
	s.Equal([]string{}, resp.Campaign.PhotoURLs)
}

func (s *HandlerTestSuite) TestCreateCampaign_MissingTitle() {
	w := s.do(http.MethodPost, "/campaigns", map[string]any{"amount": 100, "description": "d", "email": "a@b.com"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCreateCampaign_ZeroAmount() {
	s.campaigns.On("CreateCampaign", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPost, "/campaigns", map[string]any{"title": "t", "amount": 0, "description": "d", "email": "a@b.com"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCreateCampaign_AmountOutOfRange() {
	repo := new(MockCampaignRepository)
	container := &portssvc.ServiceContainer{
		LocalAuth:          s.localAuth,
		GoogleAuth:         s.google,
		User:               s.users,
		Campaign:           services.NewCampaignService(repo),
		TokenService:       s.tokens,
		GoogleOAuthHandler: s.oauth,
		Health:             s.health,
	}
	router := gin.New()
	handlers.RegisterRoutes(router, s.cfg, container, s.photos, middleware.NewMetrics())

	for _, amount := range []string{"0.001", "1000.12345678901234567890123456789012345", "1e7000"} {
		s.Run(amount, func() {
			body := fmt.Sprintf(`{"title":"School roof","amount":%s,"description":"Rebuild","email":"asha@example.com"}`, amount)
			req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			s.Equal(http.StatusBadRequest, w.Code)
			var resp dto.ErrorResponse
			s.decode(w, &resp)
			s.Contains(resp.Message, "decimal places")
		})
	}
	repo.AssertNotCalled(s.T(), "SaveCampaign", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestListCampaigns() {
	s.campaigns.On("ListFeed", mock.Anything).Return([]domain.Campaign{
		{CampaignID: "big", Amount: decimal.NewFromInt(10000)},
		{CampaignID: "small", Amount: decimal.NewFromInt(5)},
	}, nil).Once()

	w := s.do(http.MethodGet, "/campaigns", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp []dto.CampaignResponse
	s.decode(w, &resp)
	s.Require().Len(resp, 2)
	s.Equal("big", resp[0].ID)
}

// --- infrastructure routes ---

func (s *HandlerTestSuite) TestHealth() {
	s.health.On("Ping", mock.Anything).Return(nil).Once()
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)

	s.health.On("Ping", mock.Anything).Return(errors.New("no reachable servers")).Once()
	w = s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlerTestSuite) TestMetricsEndpoint() {
	s.health.On("Ping", mock.Anything).Return(nil).Once()
	s.do(http.MethodGet, "/health", nil)

	w := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "http_requests_total")
}

func (s *HandlerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
