package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/ui/style"
)

// Report prints the last stored result of every configured entry.
func (a *App) Report(_ context.Context) error {
	b, err := a.load()
	if err != nil {
		return err
	}

	rows := make([]reportRow, 0, len(b.Entries))
	for _, entry := range b.Entries {
		rec, err := a.store.Get(b.Root, entry.Name)
		if err != nil {
			return err
		}

		row := reportRow{entry: entry, record: rec}
		if rec != nil {
			// A source that cannot be hashed now simply reports as unknown.
			current, _ := a.hasher.HashFile(b.SourcePath(entry.Source))
			row.stale = rec.Stale(current)
		}
		rows = append(rows, row)
	}

	stored, err := a.store.List(b.Root)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.stdout, renderReport(lipgloss.NewRenderer(a.stdout), rows))

	if orphans := unconfigured(b, stored); len(orphans) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "%s stored results for entries no longer configured: %s\n",
			style.Warning, strings.Join(orphans, ", "))
	}
	return nil
}

// unconfigured returns the stored entries that the batch no longer names.
func unconfigured(b *domain.Batch, stored []domain.EntryRecord) []string {
	var names []string
	for _, rec := range stored {
		if _, ok := b.Entry(rec.Entry); !ok {
			names = append(names, rec.Entry)
		}
	}
	return names
}

type reportRow struct {
	entry  domain.Entry
	record *domain.EntryRecord
	stale  bool
}

func renderReport(r *lipgloss.Renderer, rows []reportRow) string {
	states := make([]domain.EntryState, len(rows))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(style.Slate)).
		Headers("ENTRY", "STATE", "BUILD", "RUN", "DURATION", "SOURCE", "TIMESTAMP")

	for i, row := range rows {
		rec := row.record
		if rec == nil {
			states[i] = domain.StateUnbuilt
			t.Row(row.entry.Name, stateCell(domain.StateUnbuilt), "-", "-", "-", "-", "never")
			continue
		}
		states[i] = rec.State
		t.Row(
			row.entry.Name,
			stateCell(rec.State),
			exitCode(rec.Build),
			exitCode(rec.Run),
			duration(rec),
			sourceCell(row.stale),
			rec.Timestamp.Local().Format(time.DateTime),
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		s := r.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return s.Bold(true).Foreground(style.Iris)
		case col == 1 && row >= 0 && row < len(states):
			return s.Foreground(style.StateColor(states[row]))
		case col == 5 && row >= 0 && row < len(rows) && rows[row].stale:
			return s.Foreground(style.Yellow)
		default:
			return s
		}
	})

	return t.String()
}

func stateCell(state domain.EntryState) string {
	return style.StateIcon(state) + " " + string(state)
}

func sourceCell(stale bool) string {
	if stale {
		return style.Tilde + " changed"
	}
	return "unchanged"
}

func exitCode(out *domain.ProcessOutput) string {
	if out == nil {
		return "-"
	}
	return strconv.Itoa(out.ExitCode)
}

func duration(rec *domain.EntryRecord) string {
	var total time.Duration
	if rec.Build != nil {
		total += rec.Build.Duration
	}
	if rec.Run != nil {
		total += rec.Run.Duration
	}
	if total == 0 {
		return "-"
	}
	return total.Round(time.Millisecond).String()
}
