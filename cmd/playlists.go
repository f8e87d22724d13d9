package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/harmonia-music/harmonia/internal/catalog"
	"github.com/harmonia-music/harmonia/internal/config"
	"github.com/harmonia-music/harmonia/internal/errmsg"
	"github.com/harmonia-music/harmonia/internal/logging"
	"github.com/harmonia-music/harmonia/internal/store"
)

// playlistsCmd manages saved playlists; without a subcommand it lists them.
var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "Manage saved playlists",
	RunE:  runPlaylistsList,
}

var playlistsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsCreate,
}

var playlistsRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistsRename,
}

var playlistsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a playlist and its tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsDelete,
}

var playlistsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the tracks of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsShow,
}

var playlistsLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Replace the saved queue with a playlist's tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsLoad,
}

var playlistsAddCmd = &cobra.Command{
	Use:   "add <name> <query>",
	Short: "Search the catalog and append the best match to a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistsAdd,
}

func init() {
	rootCmd.AddCommand(playlistsCmd)
	playlistsCmd.AddCommand(playlistsCreateCmd)
	playlistsCmd.AddCommand(playlistsRenameCmd)
	playlistsCmd.AddCommand(playlistsDeleteCmd)
	playlistsCmd.AddCommand(playlistsShowCmd)
	playlistsCmd.AddCommand(playlistsLoadCmd)
	playlistsCmd.AddCommand(playlistsAddCmd)
}

func openStore() (*store.Manager, error) {
	st, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	return st, nil
}

// findPlaylist resolves a name to a playlist, failing when it does not exist.
func findPlaylist(st *store.Manager, name string) (*store.Playlist, error) {
	p, err := st.FindPlaylistByName(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpPlaylistLoad, err)
	}
	if p == nil {
		return nil, fmt.Errorf("no playlist named %q", name)
	}
	return p, nil
}

func runPlaylistsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	playlists, err := st.ListPlaylists()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistLoad, err)
	}

	if len(playlists) == 0 {
		fmt.Println("No playlists yet.")
		return nil
	}
	for _, p := range playlists {
		updated := humanize.Time(time.Unix(p.UpdatedAt, 0))
		fmt.Printf("%-30s %3d tracks  updated %s\n", p.Name, p.TrackCount, updated)
	}
	return nil
}

func runPlaylistsCreate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if p, err := st.FindPlaylistByName(args[0]); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistCreate, err)
	} else if p != nil {
		return fmt.Errorf("playlist %q already exists", args[0])
	}

	if _, err := st.CreatePlaylist(args[0]); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistCreate, err)
	}
	fmt.Printf("Created playlist %q.\n", args[0])
	return nil
}

func runPlaylistsRename(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := findPlaylist(st, args[0])
	if err != nil {
		return err
	}
	if err := st.RenamePlaylist(p.ID, args[1]); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistRename, err)
	}
	fmt.Printf("Renamed %q to %q.\n", args[0], args[1])
	return nil
}

func runPlaylistsDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := findPlaylist(st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeletePlaylist(p.ID); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistDelete, err)
	}
	fmt.Printf("Deleted playlist %q.\n", args[0])
	return nil
}

func runPlaylistsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := findPlaylist(st, args[0])
	if err != nil {
		return err
	}
	tracks, err := st.GetPlaylistTracks(p.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistLoad, err)
	}

	if len(tracks) == 0 {
		fmt.Printf("Playlist %q is empty.\n", p.Name)
		return nil
	}
	for i, t := range tracks {
		dur := t.DurationHint.Truncate(time.Second)
		fmt.Printf("%3d. %s · %s (%s)\n", i+1, t.Title, t.ArtistLine(), dur)
	}
	return nil
}

func runPlaylistsLoad(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := findPlaylist(st, args[0])
	if err != nil {
		return err
	}
	tracks, err := st.GetPlaylistTracks(p.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistLoad, err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("playlist %q is empty", p.Name)
	}

	// Keep volume and modes; swap only the queue. The next harmonia
	// run restores this session.
	sess, err := st.GetSession()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpSessionLoad, err)
	}
	sess.Tracks = tracks
	sess.CurrentIndex = 0
	if err := st.SaveSession(*sess); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpSessionSave, err)
	}
	fmt.Printf("Queued %d tracks from %q.\n", len(tracks), p.Name)
	return nil
}

func runPlaylistsAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	logger := logging.SetupConsole(os.Stderr, cfg.Log.LogLevel())

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := findPlaylist(st, args[0])
	if err != nil {
		return err
	}

	catCfg := cfg.GetCatalogConfig()
	client := catalog.NewClient(catCfg.BaseURL, logger)
	query := strings.Join(args[1:], " ")
	tracks, err := client.SearchSongs(cmd.Context(), query, 1)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpCatalogSearch, err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("no catalog match for %q", query)
	}

	if err := st.AddPlaylistTrack(p.ID, tracks[0]); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpPlaylistAddTrack, err)
	}
	fmt.Printf("Added %s · %s to %q.\n", tracks[0].Title, tracks[0].ArtistLine(), p.Name)
	return nil
}
