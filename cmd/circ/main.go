package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakview/circulate/cmd/circ/commands"
	"github.com/oakview/circulate/logger"
)

var jsonLogs bool

var rootCmd = &cobra.Command{
	Use:   "circ",
	Short: "circ - library circulation and recommendations",
	Long: `circ - file-backed library circulation tracking.

circ manages a library's catalog and loan ledger: who holds each book,
what is overdue, and which titles to recommend to a member.

Examples:
  circ checkout 12 coai        # Lend book 12 to member coai
  circ return 12               # Take book 12 back
  circ search dune             # Find books by title substring
  circ overdue --member coai   # Overdue loans held by coai
  circ recommend coai          # Recommend titles for coai
  circ genres                  # List every genre the library owns`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(commands.CheckoutCmd)
	rootCmd.AddCommand(commands.ReturnCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.OverdueCmd)
	rootCmd.AddCommand(commands.RecommendCmd)
	rootCmd.AddCommand(commands.GenresCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
