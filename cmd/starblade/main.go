// starblade is a terminal role-playing game: a party of four heroes explores
// Rondrajs Mark and fights turn-based battles.
//
// Usage:
//
//	starblade play                         - Start the game in the terminal
//	starblade simulate --terrain forest    - Run headless autopilot battles
//
// Global flags:
//
//	--config <path>  - YAML config file (env vars prefixed STARBLADE_ override it)
//	--seed <value>   - Dice seed for reproducible runs
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/starblade/internal/config"
	"github.com/samdwyer/starblade/internal/telemetry"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_STARBLADE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starblade",
	Short: "Starblade - a turn-based party RPG in your terminal",
	Long: `Starblade sends a party of four heroes across Rondrajs Mark in search
of a lost starblade. Travel the map, rest and camp, and fight turn-based
battles against the creatures of each terrain.

Examples:
  starblade play
  starblade play --seed 42
  starblade simulate --terrain mountain --battles 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Dice seed (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
}

// appEnv is the configured ambient stack shared by subcommands.
type appEnv struct {
	cfg      config.Config
	logger   *zap.Logger
	shutdown func(context.Context) error
}

// bootstrap loads configuration, applies flag overrides and sets up logging
// and tracing. Telemetry failures are logged and the game runs without it.
func bootstrap(ctx context.Context, cmd *cobra.Command, logFile string) (*appEnv, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = logFile
	}

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	rt := &appEnv{
		cfg:      cfg,
		logger:   logger,
		shutdown: func(context.Context) error { return nil },
	}
	if cfg.Telemetry.Enabled {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
		if err != nil {
			logger.Warn("telemetry setup failed, running without observability", zap.Error(err))
		} else {
			rt.shutdown = shutdown
		}
	}
	return rt, nil
}

// close flushes traces and logs.
func (rt *appEnv) close(ctx context.Context) {
	if err := rt.shutdown(ctx); err != nil {
		rt.logger.Error("shutting down telemetry", zap.Error(err))
	}
	_ = rt.logger.Sync()
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the
	// header is built here from the key itself
	apiKey := os.Getenv("HONEYCOMB_STARBLADE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_STARBLADE_DATASET")
	if dataset == "" {
		dataset = "starblade" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
