package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/btstack-tools/espgen/internal/branding"
	"github.com/btstack-tools/espgen/internal/config"
	"github.com/btstack-tools/espgen/internal/project"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags shared by every command.
var (
	rootDir    string
	configFile string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "ESP32 port directory holding template/ (default: $"+branding.EnvVar("ROOT")+" or the current directory)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Rules file (default: <root>/"+branding.ConfigFile()+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [suffix]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates one ESP-IDF project per BTstack embedded example.

Run it from the ESP32 port directory. Every example source in the stack's
example/ folder gets a project under example<suffix>/ with a Makefile,
CMakeLists.txt, sdkconfig, set_port.sh and a main/ component. The optional
suffix selects template/sdkconfig<suffix> and the output folder name.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

// run executes the command tree with explicit arguments and streams.
func run(args []string, stdout, stderr io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

// resetFlags restores every flag in the tree to its default so repeated
// in-process runs do not inherit values.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// newLogger returns the diagnostic logger for a command.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// resolveRoot returns the absolute port directory.
func resolveRoot() (string, error) {
	dir := rootDir
	if dir == "" {
		dir = os.Getenv(branding.EnvVar("ROOT"))
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", dir, err)
	}
	return abs, nil
}

// loadLayout resolves the port root, the rules and the variant suffix
// from the command line.
func loadLayout(args []string) (project.Layout, *config.Rules, error) {
	root, err := resolveRoot()
	if err != nil {
		return project.Layout{}, nil, err
	}
	rules, err := config.Load(root, configFile)
	if err != nil {
		return project.Layout{}, nil, err
	}
	layout := project.Layout{Root: root}
	if len(args) > 0 {
		layout.Suffix = args[0]
	}
	return layout, rules, nil
}
