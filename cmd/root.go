package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/convergent-research/scholarmatch/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "scholarmatch",
	Short: "Scholarly catalog search and proposal matching",
	Long:  "Searches the OpenAlex scholarly catalog, ranks researchers and institutions, and matches a researcher roster against collaboration proposals.",
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
