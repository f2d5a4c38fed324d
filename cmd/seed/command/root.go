package command

import (
	"context"
	"fmt"
	"os"

	"unionhub/internal/config"
	"unionhub/internal/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	cfg         *config.Config
	fixturePath string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "seed - load unionhub bootstrap fixtures",
	Long: `seed loads a YAML fixture into the unionhub database: the first admin account,
announcement categories, colleges with their departments and the leader directory.

Rows are matched by natural key, so running it again only adds what is missing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		cfg = loaded
		logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogFormat == "text"})
		if fixturePath == "" {
			fixturePath = cfg.SeedFile
		}
		return nil
	},
	RunE: runApply,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fixturePath, "file", "f", "", "path to the YAML fixture file (default $SEED_FILE)")
	rootCmd.AddCommand(applyCmd, validateCmd)
}
