package command

import (
	"context"
	"fmt"
	"time"

	"unionhub/database"
	"unionhub/database/seed"
	"unionhub/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var applyTimeout time.Duration

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Insert every fixture row that is not in the database yet",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().DurationVar(&applyTimeout, "timeout", time.Minute, "maximum time for the seeding transaction")
	rootCmd.Flags().AddFlagSet(applyCmd.Flags())
}

func runApply(cmd *cobra.Command, args []string) error {
	fixtures, err := seed.Load(fixturePath)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(cmd.Context(), applyTimeout)
	defer cancel()

	sum, err := seed.Apply(ctx, db, fixtures)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info().
		Int("users", sum.Users).
		Int("categories", sum.Categories).
		Int("colleges", sum.Colleges).
		Int("leaders", sum.Leaders).
		Str("file", fixturePath).
		Msg("seed complete")

	color.Green("✓ Seed complete")
	fmt.Printf("users: %d | categories: %d | colleges: %d | leaders: %d\n",
		sum.Users, sum.Categories, sum.Colleges, sum.Leaders)
	return nil
}
