package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

var (
	historyLimit       int
	historyClear       bool
	historyCopy        bool
	historyInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent patch runs",
	Long: `List the most recent patch outcomes, newest first.

Examples:
  netcode-patcher history
  netcode-patcher history -n 50
  netcode-patcher history --interactive
  netcode-patcher history --copy
  netcode-patcher history --clear`,
	Aliases: []string{"log"},
	RunE:    runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the recorded history")
	historyCmd.Flags().BoolVar(&historyCopy, "copy", false, "Copy the most recent entry to the clipboard")
	historyCmd.Flags().BoolVarP(&historyInteractive, "interactive", "i", false, "Browse history interactively")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx, stop := getContext()
	defer stop()

	if historyClear {
		if err := historyRepo.Clear(ctx); err != nil {
			fmt.Println(ui.FormatError("Failed to clear history"))
			return err
		}
		fmt.Println(ui.FormatSuccess("History cleared"))
		return nil
	}

	entries, err := historyRepo.List(ctx, historyLimit)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to read history"))
		return err
	}

	if len(entries) == 0 {
		fmt.Println(ui.FormatInfo("No patch runs recorded yet"))
		return nil
	}

	if historyCopy {
		if err := clipboard.WriteAll(describeEntry(entries[0])); err != nil {
			fmt.Println(ui.FormatError("Failed to copy to clipboard"))
			return err
		}
		fmt.Println(ui.FormatSuccess("Copied latest entry for " + entries[0].Assembly))
		return nil
	}

	if historyInteractive {
		p := tea.NewProgram(initialHistoryModel(entries))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	}

	fmt.Println(renderHistory(entries))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d entries", len(entries))))
	return nil
}

// renderHistory lays out history entries as a table.
// Weaver errors span several lines; the table flattens them to one.
func renderHistory(entries []domain.HistoryEntry) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Time", Width: 19},
		{Header: "Assembly", Width: 24, MaxWidth: 32},
		{Header: "Outcome", Width: 18},
		{Header: "Warn", Width: 4, Align: ui.AlignRight},
		{Header: "Detail", MaxWidth: 60},
	})

	for _, e := range entries {
		detail := e.Reason
		if e.Error != "" {
			detail = e.Error
		}
		table.AddRow([]string{
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.Assembly,
			string(e.Outcome),
			fmt.Sprintf("%d", e.Warnings),
			detail,
		})
	}

	return table.Render()
}
