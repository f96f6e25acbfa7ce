package commands

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oakview/circulate/logger"
	"github.com/oakview/circulate/recommend"
)

var (
	recommendCount         int
	recommendGenre         string
	recommendIncludeRead   bool
	recommendNewnessWeight float64
	recommendGenreWeight   float64
)

// RecommendCmd represents the recommend command
var RecommendCmd = &cobra.Command{
	Use:   "recommend MEMBER_ID",
	Short: "Recommend titles for a member",
	Long: `Recommend titles for a member.

Books are scored by popularity (loan count), boosted for matching the
member's favourite genre and for being newly purchased. A member with
no loan history gets the popularity-and-newness ranking instead.

Examples:
  circ recommend coai                  # Top titles for coai
  circ recommend coai --count 10       # More of them
  circ recommend coai --genre crime    # Force the genre boost
  circ recommend coai --include-read   # Do not exclude past loans`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommendCommand,
}

func init() {
	RecommendCmd.Flags().IntVarP(&recommendCount, "count", "c", 0, "Number of titles to return (default from config)")
	RecommendCmd.Flags().StringVarP(&recommendGenre, "genre", "g", "", "Override the inferred favourite genre")
	RecommendCmd.Flags().BoolVar(&recommendIncludeRead, "include-read", false, "Keep books the member has already borrowed")
	RecommendCmd.Flags().Float64Var(&recommendNewnessWeight, "newness-weight", 0, "Score multiplier for new books (default from config)")
	RecommendCmd.Flags().Float64Var(&recommendGenreWeight, "genre-weight", 0, "Score multiplier for favourite-genre books (default from config)")
}

func runRecommendCommand(cmd *cobra.Command, args []string) error {
	memberID := args[0]

	cat, led, cfg, err := openStores()
	if err != nil {
		return err
	}

	opts := recommend.Options{
		Count:         cfg.Recommend.Count,
		NewnessDays:   cfg.Recommend.NewnessDays,
		NewnessWeight: cfg.Recommend.NewnessWeight,
		GenreWeight:   cfg.Recommend.GenreWeight,
		Genre:         recommendGenre,
		IncludeRead:   cfg.Recommend.IncludeRead || recommendIncludeRead,
	}
	if cmd.Flags().Changed("count") {
		opts.Count = recommendCount
	}
	if cmd.Flags().Changed("newness-weight") {
		opts.NewnessWeight = recommendNewnessWeight
	}
	if cmd.Flags().Changed("genre-weight") {
		opts.GenreWeight = recommendGenreWeight
	}

	engine := recommend.NewEngine(cat, led, logger.Logger)
	ranking, err := engine.Recommend(memberID, time.Now(), opts)
	if err != nil {
		return reportOutcome(err)
	}

	if len(ranking.Titles) == 0 {
		pterm.Info.Println("No recommendations")
		return nil
	}

	data := pterm.TableData{{"Rank", "Title", "Score"}}
	for i, title := range ranking.Titles {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			title,
			strconv.FormatFloat(ranking.Scores[i], 'f', -1, 64),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
