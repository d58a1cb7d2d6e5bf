package services

import (
	portsrepo "github.com/opsdesk/caseflow_app/internal/core/ports/repositories"
	portssvc "github.com/opsdesk/caseflow_app/internal/core/ports/services"
	"github.com/opsdesk/caseflow_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, cfg.RefreshTokenExpiryDuration)
	container.Case = NewCaseService(repos.CaseRepo, repos.UserRepo, cfg.StoreTimeout)
	container.Token = NewTokenService(cfg, container.User)

	return container
}
