package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

// --- TUI Model ---

type historyModel struct {
	table   table.Model
	entries []domain.HistoryEntry
	detail  bool
	status  string
}

func initialHistoryModel(entries []domain.HistoryEntry) historyModel {
	columns := []table.Column{
		{Title: "Time", Width: 19},
		{Title: "Assembly", Width: 36},
		{Title: "Outcome", Width: 18},
		{Title: "Warn", Width: 5},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			ui.TruncateCell(e.Assembly, 36),
			string(e.Outcome),
			fmt.Sprintf("%d", e.Warnings),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.ColorDefault).
		Background(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	return historyModel{
		table:   t,
		entries: entries,
	}
}

func (m historyModel) Init() tea.Cmd { return nil }

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.detail = !m.detail
			return m, nil

		case "c":
			if entry, ok := m.selected(); ok {
				if err := clipboard.WriteAll(describeEntry(entry)); err != nil {
					m.status = "Clipboard unavailable: " + err.Error()
				} else {
					m.status = "Copied " + entry.Assembly
				}
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m historyModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(ui.StyleTitle.Render(" Patch History "))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	if entry, ok := m.selected(); ok && m.detail {
		b.WriteString(describeEntry(entry))
		b.WriteString("\n\n")
	}
	if m.status != "" {
		b.WriteString(ui.FormatInfo(m.status))
		b.WriteString("\n")
	}

	b.WriteString(ui.FormatMuted(" [Enter] Details  [c] Copy  [q] Quit"))
	b.WriteString("\n")
	return b.String()
}

func (m historyModel) selected() (domain.HistoryEntry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return domain.HistoryEntry{}, false
	}
	return m.entries[idx], true
}

// describeEntry renders one entry as plain text, suitable for bug reports
func describeEntry(e domain.HistoryEntry) string {
	lines := []string{
		"Assembly: " + e.Assembly,
		"Output:   " + e.Output,
		"Outcome:  " + string(e.Outcome),
		"Time:     " + e.StartedAt.Local().Format("2006-01-02 15:04:05"),
		fmt.Sprintf("Duration: %dms", e.DurationMS),
		fmt.Sprintf("Warnings: %d", e.Warnings),
	}
	if e.Reason != "" {
		lines = append(lines, "Reason:   "+e.Reason)
	}
	if e.Error != "" {
		lines = append(lines, "Error:", e.Error)
	}
	return strings.Join(lines, "\n")
}
