package monitor

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key bindings as constants for consistency.
const (
	KeyQuit    = "q"
	KeyQuitAlt = "ctrl+c"
)

// IntentKind classifies what a key press asks the dashboard to do.
type IntentKind int

const (
	// IntentNone means the input is ignored.
	IntentNone IntentKind = iota
	// IntentQuit ends the render loop.
	IntentQuit
	// IntentKey records a printable character as the last key seen.
	IntentKey
)

// String returns a human-readable label for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentQuit:
		return "quit"
	case IntentKey:
		return "key"
	default:
		return "none"
	}
}

// Intent is a decoded keyboard action.
type Intent struct {
	Kind IntentKind
	Key  rune // set for IntentKey
}

// keyMap defines the dashboard key bindings shown in the footer.
type keyMap struct {
	Quit key.Binding
	Any  key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys(KeyQuit, KeyQuitAlt),
		key.WithHelp("q", "quit"),
	),
	// Any is only listed in the footer; IntentFromKey never matches on it.
	Any: key.NewBinding(
		key.WithKeys("any"),
		key.WithHelp("any key", "liveness check"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Any}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.Any}}
}

// IntentFromKey decodes a key press. q and ctrl+c quit, a single printable
// rune (space included) is recorded, everything else is ignored.
func IntentFromKey(msg tea.KeyMsg) Intent {
	if key.Matches(msg, keys.Quit) {
		return Intent{Kind: IntentQuit}
	}
	if msg.Alt || msg.Paste {
		return Intent{}
	}

	switch msg.Type {
	case tea.KeySpace:
		return Intent{Kind: IntentKey, Key: ' '}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && unicode.IsPrint(msg.Runes[0]) {
			return Intent{Kind: IntentKey, Key: msg.Runes[0]}
		}
	}
	return Intent{}
}
