package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose     bool
	historyPath string
	noHistory   bool
	Logger      *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "quiver <http-file>",
		Short: "An interactive client for .http request files",
		Long: `Quiver is a terminal user interface for .http files. It lists every
request defined in the file, fires the selected one at the target server,
and renders the response with scrolling, syntax highlighting and the
ability to save what came back.`,
		Args: cobra.ExactArgs(1),
		Example: `  quiver requests.http
  quiver requests.http --no-history
  quiver requests.http -v`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
		RunE: runQuiver,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVar(&historyPath, "history", "", "Path to the execution history database")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Disable execution history")

	rootCmd.SetHelpTemplate(RenderBanner() + "\n" + rootCmd.HelpTemplate())

	// will be reconfigured in PersistentPreRun based on flags
	setupLogger()
}

func runQuiver(cmd *cobra.Command, args []string) error {
	httpFile := args[0]

	if err := ValidateHTTPFile(httpFile); err != nil {
		return fmt.Errorf("invalid http file: %w", err)
	}

	if err := LaunchTUI(httpFile); err != nil {
		return fmt.Errorf("failed to launch TUI: %w", err)
	}

	return nil
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger()
	}
	return Logger
}

// ValidateHTTPFile checks that the request file exists and is not a
// directory.
func ValidateHTTPFile(httpFile string) error {
	if httpFile == "" {
		return fmt.Errorf("http file path is required")
	}

	info, err := os.Stat(httpFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("http file does not exist: %s", httpFile)
		}
		return fmt.Errorf("error accessing http file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", httpFile)
	}

	return nil
}
