package cli

import (
	"github.com/btstack-tools/espgen/internal/project"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [suffix]",
	Short: "Create ESP-IDF projects for every example",
	Long: `Create one ESP-IDF project per example under example<suffix>/.

Existing project directories are removed and rebuilt from the templates,
so files added by hand inside them are lost. Other folders in the output
directory are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	layout, rules, err := loadLayout(args)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	if rules.File != "" {
		logger.Debug().Str("file", rules.File).Msg("loaded rules")
	}

	gen, err := project.New(layout, rules,
		project.WithOutput(cmd.OutOrStdout()),
		project.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	report, err := gen.Generate()
	if err != nil {
		return err
	}
	logger.Debug().
		Str("output", report.OutputRoot).
		Int("projects", len(report.Projects)).
		Msg("generation complete")
	return nil
}
