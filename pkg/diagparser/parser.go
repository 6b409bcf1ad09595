package diagparser

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// Level represents the severity of a weaver diagnostic
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Issue represents one parsed weaver diagnostic
type Issue struct {
	Level   Level
	Code    string
	File    string
	Line    int
	Message string
}

// ParseResult holds the diagnostics found in weaver output
type ParseResult struct {
	Errors   []Issue
	Warnings []Issue
	Infos    []Issue
}

var (
	// Match the weaver's level-prefixed lines:
	// warning: message
	// error [NGO0001]: message
	// ERROR: message
	levelPattern = regexp.MustCompile(`(?i)^\s*(error|warning|warn|info)\s*(?:\[([^\]]+)\])?\s*:\s*(.*)$`)

	// Match MSBuild-style diagnostics:
	// Foo.cs(12,5): error NGO0001: message
	locationPattern = regexp.MustCompile(`(?i)^\s*(.+?)\((\d+)(?:,\d+)?\)\s*:\s*(error|warning)\s+([A-Za-z]+\d+)?\s*:\s*(.*)$`)
)

// Parse extracts diagnostics from combined weaver output.
// Lines that match neither format are ignored.
func Parse(output string) *ParseResult {
	result := &ParseResult{
		Errors:   []Issue{},
		Warnings: []Issue{},
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if matches := locationPattern.FindStringSubmatch(line); matches != nil {
			lineNum := 0
			fmt.Sscanf(matches[2], "%d", &lineNum)
			result.add(Issue{
				Level:   parseLevel(matches[3]),
				Code:    matches[4],
				File:    matches[1],
				Line:    lineNum,
				Message: matches[5],
			})
			continue
		}

		if matches := levelPattern.FindStringSubmatch(line); matches != nil {
			result.add(Issue{
				Level:   parseLevel(matches[1]),
				Code:    matches[2],
				Message: matches[3],
			})
		}
	}

	return result
}

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "error":
		return LevelError
	case "warning", "warn":
		return LevelWarning
	default:
		return LevelInfo
	}
}

func (pr *ParseResult) add(issue Issue) {
	switch issue.Level {
	case LevelError:
		pr.Errors = append(pr.Errors, issue)
	case LevelWarning:
		pr.Warnings = append(pr.Warnings, issue)
	default:
		pr.Infos = append(pr.Infos, issue)
	}
}

// HasErrors returns true if the weaver reported any error
func (pr *ParseResult) HasErrors() bool {
	return len(pr.Errors) > 0
}

// FormatIssue returns the issue as a single message line
func FormatIssue(issue Issue) string {
	var sb strings.Builder

	if issue.File != "" {
		sb.WriteString(issue.File)
		if issue.Line > 0 {
			sb.WriteString(fmt.Sprintf("(%d)", issue.Line))
		}
		sb.WriteString(": ")
	}
	if issue.Code != "" {
		sb.WriteString(issue.Code)
		sb.WriteString(": ")
	}
	sb.WriteString(issue.Message)

	return sb.String()
}

// GetSummary returns a brief summary of the parse result
func (pr *ParseResult) GetSummary() string {
	if len(pr.Errors) == 0 {
		if len(pr.Warnings) == 0 {
			return "no diagnostics"
		}
		return fmt.Sprintf("%d warning(s)", len(pr.Warnings))
	}
	return fmt.Sprintf("%d error(s), %d warning(s)", len(pr.Errors), len(pr.Warnings))
}
