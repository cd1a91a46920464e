package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hyperterse/reportdeck/core/application/driver"
	"github.com/hyperterse/reportdeck/core/infrastructure/presentation/terminal"
	"github.com/hyperterse/reportdeck/core/logger"
)

var hideSQL bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:           "run",
	Short:         "Run every report and print the results",
	RunE:          runReports,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&hideSQL, "no-sql", false, "Do not print the SQL of each report")
}

func runReports(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := prepareApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	presenter := terminal.New(cmd.OutOrStdout(), terminal.WithSQL(!hideSQL))
	if err := driver.Run(ctx, a.container.Catalog, a.container.Executor, presenter); err != nil {
		return logger.WithTag("driver", err)
	}

	return presenter.PrintSummary()
}
