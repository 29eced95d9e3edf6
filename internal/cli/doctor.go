package cli

import (
	"fmt"

	"github.com/btstack-tools/espgen/internal/doctor"
	"github.com/spf13/cobra"
)

var doctorIDFPath string

func init() {
	doctorCmd.Flags().StringVar(&doctorIDFPath, "idf-path", "", "ESP-IDF installation to check (default: $IDF_PATH)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [suffix]",
	Short: "Check that the port directory is ready for generation",
	Long: `Run diagnostic checks on the port templates, the examples directory,
the rules file and the ESP-IDF installation the generated projects build with.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, rules, err := loadLayout(args)
		if err != nil {
			return err
		}

		summary := doctor.Run(cmd.OutOrStdout(), doctor.Options{
			Layout:  layout,
			Rules:   rules,
			IDFPath: doctorIDFPath,
		})

		fmt.Fprintln(cmd.OutOrStdout())
		if summary.Failures > 0 {
			return fmt.Errorf("doctor found %d problem(s)", summary.Failures)
		}
		if summary.Warnings > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Ready, with %d warning(s).\n", summary.Warnings)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Ready.")
		return nil
	},
}
