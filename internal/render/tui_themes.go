package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the colours of the chat window
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Error   lipgloss.Color

	// Message bubbles
	UserBubble      lipgloss.Color
	UserText        lipgloss.Color
	AssistantBubble lipgloss.Color
	AssistantText   lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultTUITheme is used when no theme is configured
const DefaultTUITheme = "moecatalyst"

// Built-in TUI themes
var (
	// MoECatalystTheme mirrors the product page: deep blue canvas,
	// blue user bubbles and slate assistant bubbles.
	MoECatalystTheme = TUITheme{
		Name:        "moecatalyst",
		Description: "MoECatalyst - Deep blue with blue and slate bubbles",

		Background: lipgloss.Color("#0b1437"),
		Surface:    lipgloss.Color("#1e3a8a"),
		Border:     lipgloss.Color("#3b82f6"),

		Primary: lipgloss.Color("#60a5fa"),
		Accent:  lipgloss.Color("#a78bfa"),
		Error:   lipgloss.Color("#f87171"),

		UserBubble:      lipgloss.Color("#2563eb"),
		UserText:        lipgloss.Color("#ffffff"),
		AssistantBubble: lipgloss.Color("#374151"),
		AssistantText:   lipgloss.Color("#f3f4f6"),

		Text:     lipgloss.Color("#e5e7eb"),
		TextDim:  lipgloss.Color("#9ca3af"),
		TextMute: lipgloss.Color("#4b5563"),
	}

	// TokyoNightTheme is based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary: lipgloss.Color("#7aa2f7"),
		Accent:  lipgloss.Color("#bb9af7"),
		Error:   lipgloss.Color("#f7768e"),

		UserBubble:      lipgloss.Color("#3d59a1"),
		UserText:        lipgloss.Color("#c0caf5"),
		AssistantBubble: lipgloss.Color("#292e42"),
		AssistantText:   lipgloss.Color("#c0caf5"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// DraculaTheme is based on the Dracula color palette
	DraculaTheme = TUITheme{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary: lipgloss.Color("#8be9fd"),
		Accent:  lipgloss.Color("#ff79c6"),
		Error:   lipgloss.Color("#ff5555"),

		UserBubble:      lipgloss.Color("#6272a4"),
		UserText:        lipgloss.Color("#f8f8f2"),
		AssistantBubble: lipgloss.Color("#44475a"),
		AssistantText:   lipgloss.Color("#f8f8f2"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),
	}
)

var (
	themeMu         sync.RWMutex
	currentTUITheme = MoECatalystTheme
)

// GetTUITheme returns the active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Name == name {
			return theme, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns every built-in TUI theme
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		MoECatalystTheme,
		TokyoNightTheme,
		DraculaTheme,
	}
}

// TUIThemeNames returns just the theme names
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
