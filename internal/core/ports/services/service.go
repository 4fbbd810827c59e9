package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Transaction  TransactionSvcFacade
	User         UserSvcFacade
	Church       ChurchSvcFacade
	Reporting    ReportingService
	Meditation   MeditationSvcFacade
	Presentation PresentationSvcFacade
	Preference   PreferenceSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthHandlerSvcFacade
}
