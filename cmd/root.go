package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harmonia-music/harmonia/internal/backend"
	"github.com/harmonia-music/harmonia/internal/catalog"
	"github.com/harmonia-music/harmonia/internal/config"
	"github.com/harmonia-music/harmonia/internal/errmsg"
	"github.com/harmonia-music/harmonia/internal/logging"
	"github.com/harmonia-music/harmonia/internal/mpris"
	"github.com/harmonia-music/harmonia/internal/playback"
	"github.com/harmonia-music/harmonia/internal/queue"
	"github.com/harmonia-music/harmonia/internal/store"
	"github.com/harmonia-music/harmonia/internal/tui"
)

// Version information (set via ldflags during build)
var version = "dev"

var (
	logFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "harmonia",
	Short: "Terminal music player for streaming catalogs",
	Long: `harmonia is a terminal music player backed by a streaming catalog.

Search for songs, queue them up and play them without leaving the
terminal. The queue, playback modes and volume survive restarts, and
playback is controllable from desktop media widgets over MPRIS.`,
	Version: version,
	RunE:    runPlayer,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: from config, or disabled)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}

	file := logFile
	if file == "" {
		file = cfg.Log.File
	}
	level := logLevel
	if level == "" {
		level = cfg.Log.LogLevel()
	}
	logger, closeLog := logging.Setup(file, level)
	defer closeLog()

	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	defer st.Close()

	player := backend.NewPlayer(logger)
	defer player.Close()

	playCfg := cfg.GetPlaybackConfig()
	ctrl := playback.New(player, queue.New(), playback.Options{
		MaxRetries:   playCfg.MaxRetries,
		RetryBackoff: playCfg.RetryBackoff(),
		Volume:       playCfg.Volume,
		Logger:       logger,
	})
	defer ctrl.Close()

	if session, err := st.GetSession(); err != nil {
		logger.Warn().Err(err).Msg(string(errmsg.OpSessionLoad))
	} else if len(session.Tracks) > 0 {
		ctrl.Restore(
			session.Tracks,
			session.CurrentIndex,
			playback.RepeatMode(session.RepeatMode),
			session.Shuffle,
			session.Volume,
			session.Muted,
		)
	}

	if adapter, err := mpris.New(ctrl); err == nil {
		defer adapter.Close()
	} else {
		logger.Warn().Err(err).Msg("mpris unavailable")
	}

	catCfg := cfg.GetCatalogConfig()
	model := tui.New(tui.Options{
		Controller:  ctrl,
		Catalog:     catalog.NewClient(catCfg.BaseURL, logger),
		Store:       st,
		SearchLimit: catCfg.SearchLimit,
		SaveSession: playCfg.SaveSession(),
		Logger:      logger,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
