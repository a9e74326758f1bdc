package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects all messages, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// SetVerbose enables or disables Verbose lines.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a completed operation, e.g. a written manifest.
func Success(msg string) {
	emit(successStyle.Render("🔥 " + msg))
}

// Error prints a failure that ends the command.
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Warn prints something the user should look at but that did not fail the run.
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints a status line.
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented sub-item.
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// KeyValue prints an indented "key: value" pair.
func KeyValue(key, value string) {
	emit("   " + keyStyle.Render(key+":") + " " + value)
}

// Verbose prints a debug line when verbose mode is on.
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()

	if enabled {
		emit(stepStyle.Render("🔍 " + msg))
	}
}

// Plain prints msg unstyled, for content such as diffs that carry their own styling.
func Plain(msg string) {
	emit(msg)
}
