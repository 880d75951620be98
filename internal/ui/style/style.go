// Package style provides shared UI styling primitives: brand colors, icons
// and the per-state markers used by reports.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/replay/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// StateIcon returns the icon that marks an entry state in reports.
func StateIcon(state domain.EntryState) string {
	switch state {
	case domain.StateExecuted, domain.StateBuiltBinary:
		return Check
	case domain.StateBuiltNoBinary:
		return Dot
	case domain.StateFailed:
		return Cross
	default:
		return Circle
	}
}

// StateColor returns the brand color for an entry state.
func StateColor(state domain.EntryState) lipgloss.Color {
	switch state {
	case domain.StateExecuted, domain.StateBuiltBinary, domain.StateBuiltNoBinary:
		return Green
	case domain.StateFailed:
		return Red
	default:
		return Slate
	}
}
