package cmd

import (
	"fmt"
	"promptbuilder-backend/internal/database"
	"promptbuilder-backend/internal/seed"
	"promptbuilder-backend/internal/services"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var resetFlag bool

var setupDBCmd = &cobra.Command{
	Use:   "setup-db",
	Short: "Create the tables and load the sample categories and prompts",
	Long: `setup-db creates every table, makes sure the default "General" category
exists and adds the sample categories and prompts that are missing. Running it
again changes nothing.

Examples:
  promptbuilder setup-db           # Create tables and load sample data
  promptbuilder setup-db --reset   # Drop all tables first`,
	RunE: runSetupDB,
}

func init() {
	setupDBCmd.Flags().BoolVar(&resetFlag, "reset", false, "Drop all tables before setting up")
}

func runSetupDB(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if resetFlag {
		pterm.Warning.Println("Resetting database...")
		if err := database.Reset(db); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
		pterm.Success.Println("All tables dropped")
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	pterm.Success.Println("Database tables created")

	data, err := seed.Default()
	if err != nil {
		return err
	}
	seeder := seed.NewSeeder(services.NewCategoryService(db), services.NewPromptService(db))
	result, err := seeder.Apply(cmd.Context(), data)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Default category ready: %s\n", result.DefaultCategory)
	for _, name := range result.CreatedCategories {
		pterm.Printf("  %s %s\n", pterm.LightGreen("✓ Created category:"), name)
	}
	for _, title := range result.CreatedPrompts {
		pterm.Printf("  %s %s\n", pterm.LightGreen("✓ Created prompt:"), title)
	}

	pterm.DefaultSection.Println("Database Setup Summary")
	pterm.Printf("  Categories: %d\n", result.TotalCategories)
	pterm.Printf("  Prompts:    %d\n", result.TotalPrompts)
	pterm.Info.Println("Run `promptbuilder serve` to start the API")
	return nil
}
