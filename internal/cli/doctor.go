package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/db"
	"github.com/example/courier/internal/version"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the courier environment",
		Long: `Environment health check for courier.

Validates:
- Directory structure (~/.courier/)
- Database file and schema
- Config file
- Binary installation and PATH

Examples:
  courier doctor              # Run full health check
  courier doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkHomeDir(),
				checkDatabase(),
				checkConfig(),
				checkBinary(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'courier init' to bootstrap.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkHomeDir validates the ~/.courier directory exists
func checkHomeDir() CheckResult {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return CheckResult{Name: "Directories", Status: "✗", Details: "  Cannot get home directory"}
	}

	dir := filepath.Join(homeDir, ".courier")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Directories",
			Status:  "✗",
			Details: "  Missing: ~/.courier/\n  Run: courier init",
		}
	}

	return CheckResult{Name: "Directories", Status: "✓"}
}

// checkDatabase validates the database file exists and opens cleanly
func checkDatabase() CheckResult {
	dbPath, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: fmt.Sprintf("  %s not found\n  Run: courier init", dbPath),
		}
	}

	conn, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}

	var count int
	row := conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('conversations', 'messages')`)
	if err := row.Scan(&count); err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if count < 2 {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: "  Schema incomplete\n  Run: courier init",
		}
	}

	return CheckResult{Name: "Database", Status: "✓"}
}

// checkConfig validates the config file parses and has a default user
func checkConfig() CheckResult {
	path, err := config.Path()
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  ~/.courier/config.json not found\n  Run: courier init",
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}

	if cfg.DefaultUser == "" {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  No default_user set; commands will require --as\n  Run: courier init --default-user <id>",
		}
	}

	return CheckResult{Name: "Config", Status: "✓"}
}

// checkBinary validates courier binary installation
func checkBinary() CheckResult {
	path, err := exec.LookPath("courier")
	if err != nil {
		return CheckResult{
			Name:    "Binary",
			Status:  "⚠",
			Details: "  'courier' not found in PATH\n  Run: make install",
		}
	}

	return CheckResult{Name: "Binary", Status: "✓", Details: fmt.Sprintf("  %s (%s)", path, version.String())}
}
