package commands

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oakview/circulate/logger"
	"github.com/oakview/circulate/report"
	"github.com/oakview/circulate/watch"
)

var (
	overdueMember string
	overdueTitle  string
	overdueWatch  bool
)

// OverdueCmd represents the overdue command
var OverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Report loans past the loan period",
	Long: `Report open loans checked out more than the loan period ago.

Examples:
  circ overdue                     # All overdue loans
  circ overdue --member coai       # Only loans held by coai
  circ overdue --title rings       # Only titles containing "rings"
  circ overdue --watch             # Re-render when the files change`,
	RunE: runOverdueCommand,
}

func init() {
	OverdueCmd.Flags().StringVarP(&overdueMember, "member", "m", "", "Filter by member ID")
	OverdueCmd.Flags().StringVarP(&overdueTitle, "title", "t", "", "Filter by title substring")
	OverdueCmd.Flags().BoolVarP(&overdueWatch, "watch", "w", false, "Re-render when catalog or ledger change")
}

func runOverdueCommand(cmd *cobra.Command, args []string) error {
	cat, led, cfg, err := openStores()
	if err != nil {
		return err
	}

	evaluator := report.NewEvaluator(cat, led, cfg.Overdue.ThresholdDays, logger.Logger)
	filter := report.Filter{MemberID: overdueMember, TitleSubstring: overdueTitle}

	render := func() error {
		rows, err := evaluator.Overdue(time.Now(), filter)
		if err != nil {
			return err
		}
		return renderOverdue(rows)
	}

	if err := render(); err != nil {
		return err
	}
	if !overdueWatch {
		return nil
	}

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	watcher, err := watch.New(debounce, logger.Logger, cfg.Catalog.Path, cfg.Ledger.Path)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.OnChange(func() {
		if err := render(); err != nil {
			logger.Errorw("overdue re-render failed", "error", err)
		}
	})
	watcher.Start()

	// Block until interrupted.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func renderOverdue(rows []report.Row) error {
	if len(rows) == 0 {
		pterm.Info.Println("No overdue loans")
		return nil
	}

	data := pterm.TableData{{"ID", "Title", "Member", "Checked out", "Days overdue"}}
	for _, row := range rows {
		data = append(data, []string{
			strconv.Itoa(row.BookID),
			row.Title,
			row.MemberID,
			row.CheckoutDate,
			strconv.Itoa(row.DaysOverdue),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
