package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// Terminals cannot report ctrl+shift+letter, so the shifted shortcuts use alt.
type keyMap struct {
	Submit      key.Binding
	Post        key.Binding
	Bold        key.Binding
	Italic      key.Binding
	Link        key.Binding
	Todo        key.Binding
	FontUp      key.Binding
	FontDown    key.Binding
	ToggleMode  key.Binding
	SaveStash   key.Binding
	ApplyNewest key.Binding
	ApplyIndex  key.Binding
	StashView   key.Binding
	Settings    key.Binding
	Paths       key.Binding
	Preview     key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "submit")),
		Post:        key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("alt+p", "post to endpoint")),
		Bold:        key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:      key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Link:        key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "link")),
		Todo:        key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "todo")),
		FontUp:      key.NewBinding(key.WithKeys("alt+=", "alt++"), key.WithHelp("alt+=", "bigger")),
		FontDown:    key.NewBinding(key.WithKeys("alt+-"), key.WithHelp("alt+-", "smaller")),
		ToggleMode:  key.NewBinding(key.WithKeys("alt+,"), key.WithHelp("alt+,", "daily/standalone")),
		SaveStash:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "stash")),
		ApplyNewest: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "apply stash")),
		ApplyIndex: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1..9", "apply stash n"),
		),
		StashView: key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "stashes")),
		Settings:  key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "endpoint settings")),
		Paths:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "paths")),
		Preview:   key.NewBinding(key.WithKeys("alt+v"), key.WithHelp("alt+v", "preview")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Help:      key.NewBinding(key.WithKeys("alt+?", "alt+/"), key.WithHelp("alt+?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleMode, k.SaveStash, k.StashView, k.Paths, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Post, k.ToggleMode, k.Paths, k.Settings},
		{k.SaveStash, k.ApplyNewest, k.ApplyIndex, k.StashView},
		{k.Bold, k.Italic, k.Link, k.Todo},
		{k.FontUp, k.FontDown, k.Preview, k.Copy, k.Help, k.Quit},
	}
}

// stashIndex maps alt+1..9 to a zero-based stash index.
func stashIndex(s string) (int, bool) {
	if len(s) != len("alt+1") || s[:4] != "alt+" {
		return 0, false
	}
	c := s[4]
	if c < '1' || c > '9' {
		return 0, false
	}
	return int(c - '1'), true
}
