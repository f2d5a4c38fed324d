package command

import (
	"fmt"

	"unionhub/database/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and check the fixture file without touching the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtures, err := seed.Load(fixturePath)
		if err != nil {
			color.Red("✗ %s", fixturePath)
			return err
		}

		color.Green("✓ %s", fixturePath)
		departments := 0
		for _, c := range fixtures.Colleges {
			departments += len(c.Departments)
		}
		fmt.Printf("admin: %t | categories: %d | colleges: %d | departments: %d | leaders: %d\n",
			fixtures.Admin != nil, len(fixtures.Categories), len(fixtures.Colleges), departments, len(fixtures.Leaders))
		return nil
	},
}
