package di

import (
	"github.com/hyperterse/reportdeck/core/application/catalog"
	"github.com/hyperterse/reportdeck/core/application/executor"
	"github.com/hyperterse/reportdeck/core/application/services"
	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/infrastructure/connectors"
)

// Container owns the long-lived state of one process: the shared connection,
// the result cache and everything built on them.
type Container struct {
	Config        *config.Config
	Catalog       *catalog.Catalog
	Provider      *connectors.Provider
	Cache         *executor.ResultCache
	Executor      *executor.Executor
	ReportService *services.ReportService
}

// NewContainer wires the application from cfg. No connection is opened until
// the first report runs.
func NewContainer(cfg *config.Config) (*Container, error) {
	cat, err := catalog.Resolve(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	return NewContainerWith(cfg, cat, connectors.OpenerFor(cfg.Database)), nil
}

// NewContainerWith wires the application around an explicit catalog and
// opener.
func NewContainerWith(cfg *config.Config, cat *catalog.Catalog, open connectors.Opener) *Container {
	provider := connectors.NewProvider(open)
	cache := executor.NewResultCache()
	exec := executor.NewExecutor(provider, cache, executor.WithFailureCaching(cfg.Cache.CacheFailures()))

	return &Container{
		Config:        cfg,
		Catalog:       cat,
		Provider:      provider,
		Cache:         cache,
		Executor:      exec,
		ReportService: services.NewReportService(cat, exec, cache),
	}
}

// Close closes the shared connection if it was opened
func (c *Container) Close() error {
	if c.Provider != nil {
		return c.Provider.Close()
	}
	return nil
}
