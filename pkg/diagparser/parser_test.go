package diagparser

import (
	"testing"
)

func TestParse_LevelPrefixedLines(t *testing.T) {
	output := `Loading references
warning: Foo.Bar||  NetworkVariable||is||never||written
ERROR [NGO0003]: ServerRpc||must||return||void
info: done`

	result := Parse(output)

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0].Message != "Foo.Bar||  NetworkVariable||is||never||written" {
		t.Errorf("unexpected warning message: %q", result.Warnings[0].Message)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Code != "NGO0003" {
		t.Errorf("expected code NGO0003, got %q", result.Errors[0].Code)
	}
	if len(result.Infos) != 1 {
		t.Errorf("expected 1 info, got %d", len(result.Infos))
	}
	if !result.HasErrors() {
		t.Error("expected HasErrors() to be true")
	}
}

func TestParse_LocationFormat(t *testing.T) {
	output := "Scripts/Player.cs(42,7): error NGO0001: RPC method must end with ServerRpc\r\n"

	result := Parse(output)

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}

	issue := result.Errors[0]
	if issue.File != "Scripts/Player.cs" {
		t.Errorf("expected file Scripts/Player.cs, got %q", issue.File)
	}
	if issue.Line != 42 {
		t.Errorf("expected line 42, got %d", issue.Line)
	}

	want := "Scripts/Player.cs(42): NGO0001: RPC method must end with ServerRpc"
	if got := FormatIssue(issue); got != want {
		t.Errorf("FormatIssue() = %q, want %q", got, want)
	}
}

func TestParse_NoDiagnostics(t *testing.T) {
	result := Parse("Patching Foo.dll\nWrote Foo.dll\n")

	if result.HasErrors() {
		t.Error("expected no errors")
	}
	if got := result.GetSummary(); got != "no diagnostics" {
		t.Errorf("GetSummary() = %q", got)
	}
}

func TestGetSummary(t *testing.T) {
	result := &ParseResult{
		Errors:   []Issue{{Level: LevelError, Message: "a"}},
		Warnings: []Issue{{Level: LevelWarning, Message: "b"}, {Level: LevelWarning, Message: "c"}},
	}

	if got := result.GetSummary(); got != "1 error(s), 2 warning(s)" {
		t.Errorf("GetSummary() = %q", got)
	}
}
