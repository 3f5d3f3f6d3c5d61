package components

import "github.com/charmbracelet/bubbles/key"

// PayloadKeyMap holds the payload editor bindings.
type PayloadKeyMap struct {
	Insert  key.Binding
	Normal  key.Binding
	Format  key.Binding
	Minify  key.Binding
	Encode  key.Binding
	Decode  key.Binding
	Copy    key.Binding
	Refresh key.Binding
}

// DefaultPayloadKeyMap returns the default bindings.
func DefaultPayloadKeyMap() PayloadKeyMap {
	return PayloadKeyMap{
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit"),
		),
		Normal: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing"),
		),
		Format: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "format JSON"),
		),
		Minify: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "minify JSON"),
		),
		Encode: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "encode payload"),
		),
		Decode: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "decode payload"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
	}
}

// ShortHelp returns the bindings shown in the action row.
func (k PayloadKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Format, k.Minify, k.Encode, k.Decode, k.Copy}
}

// FullHelp returns all bindings grouped for the help overlay.
func (k PayloadKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Insert, k.Normal, k.Copy, k.Refresh},
		{k.Format, k.Minify},
		{k.Encode, k.Decode},
	}
}
