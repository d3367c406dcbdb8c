// Package style holds the colors and icons used by terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Cross   = "✗"
	Warning = "!"
)

// Icon styles.
var (
	CrossStyle   = lipgloss.NewStyle().Foreground(Red)
	WarningStyle = lipgloss.NewStyle().Foreground(Yellow)
)

// Icon renders icon with s through r, so the color profile of r's output applies.
func Icon(r *lipgloss.Renderer, icon string, s lipgloss.Style) string {
	return r.NewStyle().Inherit(s).Render(icon)
}
