package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/katjaweigel/ESMValTool/internal/domain/repositories"
	"github.com/katjaweigel/ESMValTool/internal/infrastructure/repositories/pytest"
	"github.com/katjaweigel/ESMValTool/internal/infrastructure/repositories/scm"
	"github.com/katjaweigel/ESMValTool/internal/infrastructure/repositories/shim"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register adapter constructors
	if err := container.Provide(pytest.NewEngineRepository); err != nil {
		return err
	}
	if err := container.Provide(scm.NewVersionRepository); err != nil {
		return err
	}
	if err := container.Provide(shim.NewScriptRepository); err != nil {
		return err
	}

	// Bind domain interfaces to implementations
	if err := container.Provide(func(impl *pytest.EngineRepository) domainRepos.TestEngineRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *scm.VersionRepository) domainRepos.ScmVersionRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *shim.ScriptRepository) domainRepos.ShimRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
