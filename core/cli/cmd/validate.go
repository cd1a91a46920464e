package cmd

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hyperterse/reportdeck/core/application/catalog"
	"github.com/hyperterse/reportdeck/core/logger"
	"github.com/hyperterse/reportdeck/core/observability"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:           "validate",
	Short:         "Validate the configuration and report catalog",
	RunE:          validateConfig,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	log := logger.New("validate")
	if err := configureLogging(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return log.Errorf("validation failed: %w", err)
	}

	cat, err := catalog.Resolve(cfg.Catalog)
	if err != nil {
		return log.Errorf("validation failed: %w", err)
	}

	loadFrom := configFile
	if loadFrom == "" {
		loadFrom = "defaults"
	}

	log.Info("Validation report:")
	log.Infof("  config: %s", loadFrom)
	log.Infof("  database: %s (%s)", observability.MaskConnectionString(cfg.Database.ConnectionString), cfg.Database.EffectiveConnector())
	for _, key := range slices.Sorted(maps.Keys(cfg.Database.Options)) {
		log.Infof("    %s: %s", key, observability.RedactAttributeValue(key, cfg.Database.Options[key]))
	}
	log.Infof("  catalog: %s", cat.Source())
	log.Infof("  reports: %d (%d distinct queries)", cat.Len(), cat.DistinctQueries())
	log.Infof("  cache failures: %t", cfg.Cache.CacheFailures())

	log.Successf("Configuration is valid: %s", loadFrom)
	return nil
}
