package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/courier/internal/cli"
	"github.com/example/courier/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "courier",
		Short:   "Courier - direct messaging between users",
		Version: version.String(),
		Long: `Courier manages one-to-one conversations, message delivery status,
and read tracking, backed by a local SQLite store. It can also serve
the same operations over an HTTP API.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ConversationCmd())
	rootCmd.AddCommand(cli.MessageCmd())
	rootCmd.AddCommand(cli.ReadCmd())
	rootCmd.AddCommand(cli.UnreadCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
