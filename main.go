package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
)

const envFile = "bp.env"

var (
	// populated at compile time based on data injected by the makefile
	version   = "unset"
	timestamp = "unset"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "booking-predictor",
	Short: "Predicts whether an airline booking will be completed",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load environment
		env, err := config.Load(envFile)
		if err != nil {
			return err
		}

		// Setup logging
		logger, err := config.NewLogger(env.Mode)
		if err != nil {
			return err
		}

		cfg = config.Config{
			Logger:      logger.Sugar(),
			Environment: env,
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cfg.Logger != nil {
			_ = cfg.Logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, predictCmd, categoriesCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
