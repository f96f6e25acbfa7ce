package commands

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search [TITLE]",
	Short: "Search the catalog by title",
	Long: `Search the catalog by title substring, case-insensitively.

With no argument, lists the whole catalog.

Examples:
  circ search dune           # Books whose title contains "dune"
  circ search the hobbit     # Multi-word substrings work too
  circ search                # Everything`,
	RunE: runSearchCommand,
}

func runSearchCommand(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	cat, _, _, err := openStores()
	if err != nil {
		return err
	}

	matches := cat.SearchByTitle(title)
	if len(matches) == 0 {
		pterm.Info.Println("No matching books")
		return nil
	}

	data := pterm.TableData{{"ID", "Title", "Author", "Genre", "Status"}}
	for _, rec := range matches {
		data = append(data, []string{
			strconv.Itoa(rec.ID),
			rec.Title,
			rec.Author,
			rec.Genre,
			availabilityLabel(rec.HeldBy),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
