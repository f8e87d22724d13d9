package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application key bindings.
type KeyMap struct {
	Quit        key.Binding
	SwitchPane  key.Binding
	FocusSearch key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	AddToQueue key.Binding
	PlayNext   key.Binding
	Remove     key.Binding
	ClearQueue key.Binding
	UndoQueue  key.Binding

	Toggle       key.Binding
	NextTrack    key.Binding
	PrevTrack    key.Binding
	SeekForward  key.Binding
	SeekBackward key.Binding
	VolumeUp     key.Binding
	VolumeDown   key.Binding
	Mute         key.Binding
	Repeat       key.Binding
	Shuffle      key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		FocusSearch: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),

		AddToQueue: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to queue")),
		PlayNext:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "play next")),
		Remove:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		ClearQueue: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear queue")),
		UndoQueue:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore queue")),

		Toggle:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		NextTrack:    key.NewBinding(key.WithKeys("pgdown", "n"), key.WithHelp("n", "next")),
		PrevTrack:    key.NewBinding(key.WithKeys("pgup", "p"), key.WithHelp("p", "previous")),
		SeekForward:  key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "seek +5s")),
		SeekBackward: key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "seek -5s")),
		VolumeUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		VolumeDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		Mute:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Repeat:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "repeat mode")),
		Shuffle:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "shuffle")),
	}
}
