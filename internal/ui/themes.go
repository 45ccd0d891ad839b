package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the pager's colour set
type Theme struct {
	Name string

	Label     lipgloss.AdaptiveColor
	Number    lipgloss.AdaptiveColor
	Key       lipgloss.AdaptiveColor
	Action    lipgloss.AdaptiveColor
	Separator lipgloss.AdaptiveColor
}

func buildTheme(name string, label, number, key, action, separator [2]string) Theme {
	return Theme{
		Name:      name,
		Label:     lipgloss.AdaptiveColor{Light: label[0], Dark: label[1]},
		Number:    lipgloss.AdaptiveColor{Light: number[0], Dark: number[1]},
		Key:       lipgloss.AdaptiveColor{Light: key[0], Dark: key[1]},
		Action:    lipgloss.AdaptiveColor{Light: action[0], Dark: action[1]},
		Separator: lipgloss.AdaptiveColor{Light: separator[0], Dark: separator[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#059669", "#10B981"}, [2]string{"#1E40AF", "#3B82F6"},
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#059669", "#10B981"}, [2]string{"#6B7280", "#9CA3AF"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#006600", "#00FF00"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#000080", "#8080FF"}, [2]string{"#006600", "#00FF00"}, [2]string{"#000000", "#FFFFFF"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#2B6CB0", "#63B3ED"},
		[2]string{"#2B6CB0", "#63B3ED"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#A0AEC0", "#718096"})
)

// ThemeByName looks up one of the built-in themes
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme, nil
	case "high-contrast":
		return HighContrastTheme, nil
	case "minimal":
		return MinimalTheme, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme: %s (must be one of: default, high-contrast, minimal)", name)
	}
}

// AvailableThemes lists the built-in theme names
func AvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles are the rendered pieces of a frame
type Styles struct {
	Label     lipgloss.Style
	Number    lipgloss.Style
	Key       lipgloss.Style
	Action    lipgloss.Style
	Separator lipgloss.Style
}

// NewStyles derives frame styles from a theme
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Label:     lipgloss.NewStyle().Foreground(theme.Label),
		Number:    lipgloss.NewStyle().Foreground(theme.Number).Bold(true),
		Key:       lipgloss.NewStyle().Foreground(theme.Key),
		Action:    lipgloss.NewStyle().Foreground(theme.Action),
		Separator: lipgloss.NewStyle().Foreground(theme.Separator),
	}
}
