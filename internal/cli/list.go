package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/btstack-tools/espgen/internal/project"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [suffix]",
	Short: "List the examples that would be generated",
	Long: `List every example source that qualifies for generation, whether it
carries a GATT database or needs the SCO audio companions, and the project
directory it would be written to. Nothing is created or removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a discovered example for display.
type listEntry struct {
	project.Example
	Project string `json:"project"`
}

func runList(cmd *cobra.Command, args []string) error {
	layout, rules, err := loadLayout(args)
	if err != nil {
		return err
	}

	examples, err := project.Discover(rules.ExamplesPath(layout.Root), rules)
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(examples))
	for _, ex := range examples {
		entries = append(entries, listEntry{Example: ex, Project: layout.ProjectDir(ex.Name)})
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No examples found in %s\n", rules.ExamplesPath(layout.Root))
		return nil
	}
	return printListTable(cmd, layout, entries)
}

func printListTable(cmd *cobra.Command, layout project.Layout, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tGATT\tAUDIO\tPROJECT")
	for _, e := range entries {
		rel, err := filepath.Rel(layout.Root, e.Project)
		if err != nil {
			rel = e.Project
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, yesNo(e.HasGatt), yesNo(e.HasAudio), filepath.ToSlash(rel))
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
