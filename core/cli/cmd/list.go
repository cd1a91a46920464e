package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hyperterse/reportdeck/core/application/catalog"
	"github.com/hyperterse/reportdeck/core/logger"
)

// listCmd prints the catalog without touching the database.
var listCmd = &cobra.Command{
	Use:           "list",
	Short:         "List the reports in the catalog",
	RunE:          listReports,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listReports(cmd *cobra.Command, args []string) error {
	if err := configureLogging(); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := catalog.Resolve(cfg.Catalog)
	if err != nil {
		return logger.WithTag("catalog", err)
	}

	items := make([]pterm.BulletListItem, 0, cat.Len())
	for _, def := range cat.Entries() {
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text:  fmt.Sprintf("%2d. %s", def.Number(), def.Label),
		})
	}

	out, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
