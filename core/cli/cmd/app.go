package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperterse/reportdeck/core/cli/internal"
	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/infrastructure/di"
	"github.com/hyperterse/reportdeck/core/logger"
	"github.com/hyperterse/reportdeck/core/observability"
)

// app is what every command that touches the database starts from.
type app struct {
	container *di.Container
	telemetry *observability.Providers
}

// configureLogging sets the log level, tag filter and log file from flags.
// It runs before the config file is read so loading is logged consistently.
func configureLogging() error {
	logger.SetLogLevel(config.ResolveLogLevel(verbose, logLevel, nil))

	// CLI flag takes precedence over env var
	tagFilterStr := logTags
	if tagFilterStr == "" {
		tagFilterStr = os.Getenv("REPORTDECK_LOG_TAGS")
	}
	if tagFilterStr != "" {
		logger.SetTagFilter(tagFilterStr)
	}

	if logFile {
		filePath, err := logger.SetLogFile()
		if err != nil {
			return fmt.Errorf("failed to initialize log file: %w", err)
		}
		logger.New("main").Infof("Log file: %s", filePath)
	}
	return nil
}

// loadConfig reads the config file (if any), applies flag overrides and
// environment fallbacks, and validates the result.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		if configDir := filepath.Dir(configFile); configDir != "" && configDir != "." {
			LoadEnvFiles(configDir)
		}
	} else {
		LoadEnvFiles("")
	}

	cfg, err := internal.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	if err := internal.Finalize(cfg, internal.Overrides{Database: databaseURL, Catalog: catalogFile}); err != nil {
		return nil, err
	}

	// Config file level applies only when no flag set one.
	if logLevel == 0 && !verbose {
		logger.SetLogLevel(config.ResolveLogLevel(false, 0, cfg))
	}
	return cfg, nil
}

// prepareApp loads configuration and wires the container. The database is
// not contacted until the first report runs.
func prepareApp(ctx context.Context) (*app, error) {
	if err := configureLogging(); err != nil {
		return nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New("main")
	log.Infof("Configuration loaded")
	log.Debugf("Database: %s (%s)", observability.MaskConnectionString(cfg.Database.ConnectionString), cfg.Database.EffectiveConnector())

	otelCfg, err := observability.ResolveConfig(cfg.Name)
	if err != nil {
		return nil, log.Errorf("observability config: %w", err)
	}
	if otelCfg.ServiceVersion == "dev" {
		otelCfg.ServiceVersion = GetVersion()
	}
	telemetry, err := observability.Setup(ctx, otelCfg)
	if err != nil {
		return nil, log.Errorf("observability setup: %w", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		_ = telemetry.Shutdown(ctx)
		return nil, err
	}
	log.Debugf("Catalog: %s (%d reports, %d distinct queries)", container.Catalog.Source(), container.Catalog.Len(), container.Catalog.DistinctQueries())

	return &app{container: container, telemetry: telemetry}, nil
}

// Close releases the connection and flushes telemetry.
func (a *app) Close() {
	log := logger.New("main")
	if err := a.container.Close(); err != nil {
		log.Warnf("Error closing database connection: %v", err)
	}
	if err := a.telemetry.Shutdown(context.Background()); err != nil {
		log.Debugf("Error flushing telemetry: %v", err)
	}
	if err := logger.CloseLogFile(); err != nil {
		log.Debugf("Error closing log file: %v", err)
	}
}
