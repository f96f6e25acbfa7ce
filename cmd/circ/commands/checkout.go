package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oakview/circulate/circulation"
	"github.com/oakview/circulate/logger"
)

// CheckoutCmd represents the checkout command
var CheckoutCmd = &cobra.Command{
	Use:   "checkout BOOK_ID MEMBER_ID",
	Short: "Check a book out to a member",
	Long: `Check a book out to a member.

Appends an open entry to the loan ledger and marks the catalog record
as held by the member. Fails if the book is already on loan.

Examples:
  circ checkout 12 coai      # Lend book 12 to member coai`,
	Args: cobra.ExactArgs(2),
	RunE: runCheckoutCommand,
}

func runCheckoutCommand(cmd *cobra.Command, args []string) error {
	bookID, memberID := args[0], args[1]

	cat, led, _, err := openStores()
	if err != nil {
		return err
	}

	projector := circulation.NewProjector(cat, led, logger.Logger)
	if err := projector.Checkout(bookID, memberID, time.Now()); err != nil {
		return reportOutcome(err)
	}

	pterm.Success.Println("Checkout complete")
	return nil
}
