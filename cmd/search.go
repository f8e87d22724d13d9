package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harmonia-music/harmonia/internal/catalog"
	"github.com/harmonia-music/harmonia/internal/config"
	"github.com/harmonia-music/harmonia/internal/errmsg"
	"github.com/harmonia-music/harmonia/internal/logging"
)

var searchLimit int

// searchCmd performs a one-shot catalog search, useful for checking
// connectivity and piping results into scripts.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog and print matching songs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (default: from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}

	logger := logging.SetupConsole(os.Stderr, cfg.Log.LogLevel())
	catCfg := cfg.GetCatalogConfig()
	limit := searchLimit
	if limit <= 0 {
		limit = catCfg.SearchLimit
	}

	client := catalog.NewClient(catCfg.BaseURL, logger)
	tracks, err := client.SearchSongs(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpCatalogSearch, err)
	}

	if len(tracks) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for _, t := range tracks {
		dur := t.DurationHint.Truncate(time.Second)
		fmt.Printf("%-20s %s · %s (%s)\n", t.ID, t.Title, t.ArtistLine(), dur)
	}
	return nil
}
