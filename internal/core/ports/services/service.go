package services

import portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"

// ServiceContainer holds instances of all the application services.
// It is the entry point handlers use to reach service functionality.
type ServiceContainer struct {
	LocalAuth          LocalAuthSvc
	GoogleAuth         GoogleAuthSvc
	User               UserSvcFacade
	Campaign           CampaignSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Health             portsrepo.HealthChecker
}
