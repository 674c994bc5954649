package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "social-verify",
	Short: "Verify social media profiles against business records",
	Long:  "Scores candidate Facebook and Instagram links against a business directory's name, address and phone, and classifies each business as VERIFIED, LIKELY_CORRECT or UNVERIFIED.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
