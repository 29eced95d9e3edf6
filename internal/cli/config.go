package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect generator rules",
	Long: `Inspect the rules that decide which examples are generated. Rules come
from built-in defaults, an optional espgen.yaml in the port directory and
ESPGEN_* environment variables, in increasing order of precedence.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective rules as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rules, err := loadLayout(nil)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(rules)
		if err != nil {
			return fmt.Errorf("marshaling rules: %w", err)
		}
		out := cmd.OutOrStdout()
		if rules.File != "" {
			fmt.Fprintf(out, "# source: %s\n", rules.File)
		} else {
			fmt.Fprintln(out, "# source: built-in defaults")
		}
		_, err = out.Write(data)
		return err
	},
}
