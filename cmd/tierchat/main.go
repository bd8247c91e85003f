// Command tierchat runs the three chatbot tiers and their tools from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Protocol-Lattice/tiered-agent/pkg/config"
)

var (
	configFile string
	envFile    string
	verbose    bool

	cfg       *config.Config
	logger    *zap.Logger
	sessionID string
)

var rootCmd = &cobra.Command{
	Use:   "tierchat",
	Short: "Three tiers of chatbot: plain, tool-assisted and multi-step",
	Long: `tierchat demonstrates three chatbot tiers backed by a language model:

  Level 1  answers questions and refuses arithmetic
  Level 2  answers arithmetic with a calculator and refuses compound requests
  Level 3  splits compound requests into steps and routes each to a tool or the model`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.Options{ConfigFile: configFile, EnvFile: envFile})
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = newLogger(cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		sessionID = uuid.NewString()
		logger = logger.With(zap.String("session", sessionID))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./tierchat.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default ./.env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(chatCmd, askCmd, calcCmd, translateCmd, toolsCmd)
}

// newLogger builds a production logger writing to stderr so replies on stdout stay clean.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if strings.TrimSpace(level) != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
