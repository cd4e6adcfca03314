package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fylein/fyle-sdk-go/config"
	"github.com/fylein/fyle-sdk-go/fyle"
)

var (
	cfgFile    string
	outputMode string
	cfg        *config.Config
	logger     = zerolog.Nop()
	client     *fyle.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fylectl",
	Short: "A command line client for the Fyle API",
	Long: `fylectl authenticates against Fyle with an OAuth2 refresh token and
lets you list and upsert projects from the command line.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputMode, "output", "o", "", "output format: table or json (default: table on a terminal, json otherwise)")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration, builds the Fyle client and authenticates
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if _, err := resolveOutput(outputMode); err != nil {
		return err
	}

	userAgent := cfg.HTTP.UserAgent
	if userAgent == "" {
		userAgent = "fylectl/" + version
	}

	client, err = fyle.NewClient(fyle.Credentials{
		BaseURL:      cfg.Fyle.BaseURL,
		ClientID:     cfg.Fyle.ClientID,
		ClientSecret: cfg.Fyle.ClientSecret,
		RefreshToken: cfg.Fyle.RefreshToken,
	}, logger,
		fyle.WithTimeout(cfg.HTTP.Timeout),
		fyle.WithUserAgent(userAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create Fyle client: %w", err)
	}

	if err := client.Authenticate(commandContext(cmd)); err != nil {
		return err
	}

	logger.Debug().Str("base_url", client.BaseURL()).Msg("Fyle client ready")
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

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// withReauth runs call and, if the access token turned out to be stale,
// authenticates once more and repeats it.
func withReauth[T any](ctx context.Context, c *fyle.Client, call func(context.Context) (T, error)) (T, error) {
	result, err := call(ctx)
	if !errors.Is(err, fyle.ErrTokenExpired) {
		return result, err
	}

	logger.Info().Msg("Access token expired, re-authenticating")
	if err := c.Authenticate(ctx); err != nil {
		var zero T
		return zero, err
	}
	return call(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
