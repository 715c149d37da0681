package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/showsync/config"
	"github.com/s0up4200/showsync/tvmaze"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  tvmaze.API
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "showsync",
	Short: "A tool to fetch TV show metadata from the TVMaze catalog",
	Long: `showsync is a CLI tool around a resilient TVMaze API client. It fetches
the show index, per-show details, seasons and episodes, and reconciles the
incremental updates feed into a clean list of changed shows.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the version string shown by --version
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the TVMaze client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create TVMaze client
	client, err = tvmaze.NewClient(cfg.TVMaze.URL, logger,
		tvmaze.WithMaxRetries(cfg.TVMaze.MaxRetries),
		tvmaze.WithBackoffFactor(cfg.TVMaze.BackoffFactor),
	)
	if err != nil {
		return fmt.Errorf("failed to create TVMaze client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the TVMaze API",
	Long:  `Test the connection to the configured TVMaze instance by fetching the first page of the show index.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TVMaze at %s...\n", cfg.TVMaze.URL)

	ctx := context.Background()
	shows, err := client.GetShows(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch show index: %w", err)
	}
	if shows == nil {
		return fmt.Errorf("show index page 0 not found")
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("- Shows on first index page: %d\n", len(shows))
	fmt.Printf("- Retries: %d, backoff factor: %g\n", cfg.TVMaze.MaxRetries, cfg.TVMaze.BackoffFactor)

	return nil
}
