package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/platform/config"
	"github.com/nepalfund/nepalfund_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// googleOAuthHandlerService implements the authorization-code half of Google sign-in.
// The ID token it returns goes through the same verifier as a browser credential.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *googleOAuthHandlerService) Enabled() bool {
	return s.cfg.GoogleClientID != "" && s.cfg.GoogleClientSecret != ""
}

// GenerateStateString creates a secure random string used as the OAuth state.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCodeForIDToken exchanges an OAuth authorization code and extracts the id_token.
func (s *googleOAuthHandlerService) ExchangeCodeForIDToken(ctx context.Context, code string) (string, error) {
	if !s.Enabled() {
		return "", apperrors.NewAppError(http.StatusNotImplemented, "Google authorization-code flow is not configured", nil)
	}
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", fmt.Errorf("%w: code exchange rejected: %s", apperrors.ErrInvalidToken, retrieveErr.ErrorCode)
		}
		return "", fmt.Errorf("%w: failed to exchange oauth code: %w", apperrors.ErrVerificationUnavailable, err)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("%w: token response has no id_token", apperrors.ErrInvalidToken)
	}
	return idToken, nil
}
