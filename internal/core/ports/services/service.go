package services

// ServiceContainer bundles the service facades the handlers depend on.
type ServiceContainer struct {
	Case  CaseSvcFacade
	User  UserSvcFacade
	Token TokenSvcFacade
}
