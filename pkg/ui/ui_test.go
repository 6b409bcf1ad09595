package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTable_Render(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Assembly"},
		{Header: "Outcome", Width: 10},
		{Header: "Warnings", Align: "right"},
	})
	table.AddRow([]string{"Foo.dll", "patched", "2"})
	table.AddRow([]string{"MMHook_Foo.dll", "skipped-hook", "0"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Assembly") || !strings.Contains(lines[0], "Outcome") {
		t.Errorf("header missing column names: %q", lines[0])
	}
	if !strings.Contains(lines[3], "MMHook_Foo.dll") {
		t.Errorf("row missing content: %q", lines[3])
	}
}

func TestTable_RenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("expected empty render for table without columns, got %q", got)
	}
}

func TestPadString(t *testing.T) {
	tests := []struct {
		s, align string
		width    int
		want     string
	}{
		{"ab", "left", 4, "ab  "},
		{"ab", "right", 4, "  ab"},
		{"ab", "center", 5, " ab  "},
		{"abcdef", "left", 3, "abcdef"},
	}

	for _, tt := range tests {
		if got := padString(tt.s, tt.width, tt.align); got != tt.want {
			t.Errorf("padString(%q, %d, %q) = %q, want %q", tt.s, tt.width, tt.align, got, tt.want)
		}
	}
}

func TestTable_FlattensAndTruncatesCells(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Assembly"},
		{Header: "Detail", MaxWidth: 12},
	})
	table.AddRow([]string{"Foo.dll", "line one\n  line two\nline three"})
	table.AddRow([]string{"Ünïcödé.dll"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "line one li…") {
		t.Errorf("expected flattened, truncated detail, got %q", lines[2])
	}

	// Column widths are measured in terminal cells, not bytes
	headerCol := lipgloss.Width(lines[0][:strings.Index(lines[0], "Detail")])
	rowCol := lipgloss.Width(lines[2][:strings.Index(lines[2], "line one")])
	if headerCol != 11+2 || rowCol != headerCol {
		t.Errorf("detail column misaligned: header at %d, row at %d\n%s", headerCol, rowCol, out)
	}
}

func TestTruncateCell(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"Assembly-CSharp.dll", 8, "Assembl…"},
		{"Ünïcödé.dll", 5, "Ünïc…"},
		{"abc", 0, "abc"},
	}

	for _, tt := range tests {
		if got := TruncateCell(tt.s, tt.width); got != tt.want {
			t.Errorf("TruncateCell(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestFlattenCell(t *testing.T) {
	if got := FlattenCell("a\n  b\r\n\tc "); got != "a b c" {
		t.Errorf("FlattenCell = %q, want %q", got, "a b c")
	}
}

func TestProgressBar_Render(t *testing.T) {
	bar := NewProgressBar(20)

	if bar.Render(0, 0) == "" {
		t.Error("expected a rendered bar for empty total")
	}
	if bar.Render(5, 10) == "" {
		t.Error("expected a rendered bar")
	}
	if bar.Render(20, 10) != bar.Render(10, 10) {
		t.Error("expected overflow to clamp at 100%")
	}
}

func TestHighlight(t *testing.T) {
	src := "weaver:\n  command: netcode-weaver\n"
	out := Highlight(src, "yaml")

	if !strings.Contains(out, "netcode-weaver") {
		t.Errorf("Expected highlighted output to keep content, got %q", out)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("Expected ANSI escape sequences in highlighted output")
	}
}
