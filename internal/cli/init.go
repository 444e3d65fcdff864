package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var defaultUser string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the courier database and config",
		Long: `Initialize the courier database at ~/.courier/courier.db with the
required schema, and write ~/.courier/config.json.

Examples:
  courier init
  courier init --default-user alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing courier database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if defaultUser != "" {
				cfg.DefaultUser = defaultUser
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println("✓ Config written to ~/.courier/config.json")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  courier conversation start <other-user> --as <your-id>")
			fmt.Println("  courier serve")

			return nil
		},
	}

	cmd.Flags().StringVar(&defaultUser, "default-user", "", "User ID to act as when --as is omitted")

	return cmd
}
