package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// GenresCmd represents the genres command
var GenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List every genre the library owns",
	RunE:  runGenresCommand,
}

func runGenresCommand(cmd *cobra.Command, args []string) error {
	cat, _, _, err := openStores()
	if err != nil {
		return err
	}

	genres := cat.Genres()
	if len(genres) == 0 {
		pterm.Info.Println("No genres found")
		return nil
	}

	for _, genre := range genres {
		pterm.Println(genre)
	}
	return nil
}
