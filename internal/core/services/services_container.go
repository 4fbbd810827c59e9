package services

import (
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// vendor may be nil; meditation generation then serves fallback content only.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, vendor MeditationVendor) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize church service first since most other services depend on its authorizer
	container.Church = NewChurchService(
		repos.ChurchRepo,
		repos.UserRepo,
	)

	churchAuthorizer := container.Church.(portssvc.ChurchAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithChurchAuthorizer(churchAuthorizer),
	)

	container.User = NewUserService(repos.UserRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account, churchAuthorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingChurchAuthorizer(churchAuthorizer))
	container.Preference = NewPreferenceService(repos.PreferenceRepo)
	container.Meditation = NewMeditationService(repos.MeditationRepo, container.Preference, vendor)
	container.Presentation = NewPresentationService(repos.PresentationRepo, churchAuthorizer)

	// Initialize TokenService
	container.Token = NewTokenService(cfg, container.User)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
