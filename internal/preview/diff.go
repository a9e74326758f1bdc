// Package preview shows what a sync would change in the manifest and asks
// before writing.
package preview

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// DiffOptions tunes Render. Zero values pick the defaults noted per field.
type DiffOptions struct {
	TabWidth int // default 4
	Width    int // default: terminal width, or 80 when unknown
}

// Stats counts changed lines in a unified diff.
type Stats struct {
	Added   int
	Removed int
}

// Unified returns a plain unified diff of old and newer, or "" when equal.
func Unified(path string, old, newer []byte, contextLines int) (string, error) {
	if contextLines <= 0 {
		contextLines = 3
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(newer)),
		FromFile: path + " (current)",
		ToFile:   path + " (synced)",
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", path, err)
	}
	return text, nil
}

// Count tallies added and removed lines of a unified diff.
func Count(diff string) Stats {
	var s Stats
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			s.Added++
		case strings.HasPrefix(line, "-"):
			s.Removed++
		}
	}
	return s
}

// Render styles a unified diff for the terminal: tabs expanded, long lines
// truncated to the available width.
func Render(diff string, opts *DiffOptions) string {
	if diff == "" {
		return ""
	}
	o := DiffOptions{TabWidth: 4}
	if opts != nil {
		o = *opts
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	if o.Width <= 0 {
		o.Width = terminalWidth()
	}

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		content := truncate(expandTabs(line, o.TabWidth), o.Width-2)
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			content = headerStyle.Render(content)
		case strings.HasPrefix(line, "@@"):
			content = hunkStyle.Render(content)
		case strings.HasPrefix(line, "+"):
			content = addedStyle.Render(content)
		case strings.HasPrefix(line, "-"):
			content = removedStyle.Render(content)
		}
		b.WriteString(content)
		b.WriteByte('\n')
	}
	return b.String()
}

func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 80
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
