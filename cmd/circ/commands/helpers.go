package commands

import (
	"github.com/pterm/pterm"

	"github.com/oakview/circulate/catalog"
	"github.com/oakview/circulate/config"
	"github.com/oakview/circulate/errors"
	"github.com/oakview/circulate/ledger"
	"github.com/oakview/circulate/logger"
)

// openStores builds the two stores from configuration.
func openStores() (*catalog.Store, *ledger.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	cat := catalog.NewStore(cfg.Catalog.Path, logger.Logger)
	led := ledger.NewStore(cfg.Ledger.Path, logger.Logger)
	return cat, led, cfg, nil
}

// reportOutcome maps the recoverable circulation outcomes to operator
// messages. Validation and availability failures are part of normal
// operation; only system faults propagate as command errors.
func reportOutcome(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrInvalidMemberID):
		pterm.Warning.Println("Invalid member ID given")
		return nil
	case errors.Is(err, errors.ErrInvalidBookID):
		pterm.Warning.Println("Invalid book ID given")
		return nil
	case errors.Is(err, errors.ErrBookUnavailable):
		pterm.Warning.Println("Book is not available for loan")
		return nil
	case errors.Is(err, errors.ErrAlreadyAvailable):
		pterm.Warning.Println("Book is already available")
		return nil
	default:
		return err
	}
}

// availabilityLabel renders a holder field for display.
func availabilityLabel(holder string) string {
	if holder == catalog.Available {
		return "available"
	}
	return "on loan to " + holder
}
