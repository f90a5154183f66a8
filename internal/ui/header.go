package ui

import (
	"fmt"
	"strings"

	"github.com/spotterhq/spotter/internal/stockd"
)

// renderHeader renders the status bar: logo, connection state, hit counts
// per section, and the last update timestamp.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	parts := []string{styles.Logo.Render("spotter")}

	if m.snap.Err != "" {
		parts = append(parts,
			styles.DangerText.Render("STOCKD "+classifyConnectionError(m.snap.Err)),
			styles.WarningText.Render(truncate(m.snap.Err, 60)),
		)
		return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
	}

	if m.snap.Loading {
		parts = append(parts, m.spin.View()+styles.MutedText.Render("searching"))
	}

	if total := m.snap.Results.Total(); total > 0 {
		parts = append(parts,
			styles.MutedText.Render("Hits:")+" "+styles.Text.Render(fmt.Sprintf("%d", total)))
		parts = append(parts, m.sectionSummary(styles))
	}

	if !m.snap.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(m.snap.LastUpdated.Format("15:04:05")))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// sectionSummary renders compact per-kind counts, e.g. "Pr:12 Sa:3 Cu:1".
func (m Model) sectionSummary(styles Styles) string {
	var parts []string
	for _, kind := range stockd.Kinds() {
		section := m.snap.Results.Section(kind)
		if section.TotalCount == 0 {
			continue
		}
		abbrev := kind.Label()[:2]
		parts = append(parts,
			styles.KindStyle(kind).Render(abbrev)+styles.MutedText.Render(fmt.Sprintf(":%d", section.TotalCount)))
	}
	return strings.Join(parts, " ")
}

// renderCommandBar renders the key hints bar for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.focus == focusQuery {
		commands = []cmd{
			{"Tab", "Results"},
			{"Enter", "Search now"},
			{"↑/↓", "Select"},
			{"ctrl+r", "Retry"},
			{"esc", "Clear"},
			{"ctrl+c", "Quit"},
		}
	} else {
		commands = []cmd{
			{"j/k", "Navigate"},
			{"g/G", "Top/Bottom"},
			{"Enter", "Detail"},
			{"/", "Query"},
			{"r", "Retry"},
			{"T", m.theme.Name},
			{"?", "Help"},
			{"q", "Quit"},
		}
	}

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+styles.FaintText.Render(":")+styles.MutedText.Render(c.desc))
	}

	return styles.Header.Width(m.width).Render(strings.Join(segments, "  "))
}

// renderQueryLine renders the search input.
func (m Model) renderQueryLine() string {
	styles := m.theme.Styles()
	view := m.input.View()
	if m.focus == focusResults {
		// Dim the prompt while the list owns the keyboard.
		view = styles.MutedText.Render("› ") + styles.Text.Render(m.input.Value())
	}
	return " " + view
}

// classifyConnectionError returns a short description of a search error.
func classifyConnectionError(msg string) string {
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}
