package services

import (
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/platform/config"
)

// NewServiceContainer wires the services over the given repositories.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, verifier portssvc.CredentialVerifier, opts ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		LocalAuth:          NewLocalAuthService(repos.UserRepo, opts...),
		GoogleAuth:         NewGoogleAuthService(repos.UserRepo, verifier, opts...),
		User:               NewUserService(repos.UserRepo, opts...),
		Campaign:           NewCampaignService(repos.CampaignRepo, opts...),
		TokenService:       NewTokenService(cfg),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
		Health:             repos.Health,
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LocalAuthSvc                = (*localAuthService)(nil)
	_ portssvc.GoogleAuthSvc               = (*googleAuthService)(nil)
	_ portssvc.UserSvcFacade               = (*userService)(nil)
	_ portssvc.CampaignSvcFacade           = (*campaignService)(nil)
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
	_ portssvc.CredentialVerifier          = (*googleCredentialVerifier)(nil)
)
