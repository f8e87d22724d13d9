// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogSearch Op = "search the catalog"

	// Queue operations
	OpQueueAdd     Op = "add to queue"
	OpQueueRemove  Op = "remove from queue"
	OpQueueRestore Op = "restore previous queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistRename   Op = "rename playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistLoad     Op = "load playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistSave     Op = "save playlist"

	// Session operations
	OpSessionLoad Op = "restore session"
	OpSessionSave Op = "save session"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
