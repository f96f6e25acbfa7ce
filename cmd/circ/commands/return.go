package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oakview/circulate/circulation"
	"github.com/oakview/circulate/logger"
)

// ReturnCmd represents the return command
var ReturnCmd = &cobra.Command{
	Use:   "return BOOK_ID",
	Short: "Return a book to the library",
	Long: `Return a book to the library.

Closes the open ledger entry for the book and marks the catalog record
available again. Returning a book that is already available is a no-op.

Examples:
  circ return 12             # Take book 12 back`,
	Args: cobra.ExactArgs(1),
	RunE: runReturnCommand,
}

func runReturnCommand(cmd *cobra.Command, args []string) error {
	bookID := args[0]

	cat, led, _, err := openStores()
	if err != nil {
		return err
	}

	projector := circulation.NewProjector(cat, led, logger.Logger)
	if err := projector.Return(bookID, time.Now()); err != nil {
		return reportOutcome(err)
	}

	pterm.Success.Println("Return complete")
	return nil
}
