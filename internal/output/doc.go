// Package output prints wren's user-facing messages.
//
// Messages share the Firebird Suite look: lipgloss styles with a leading
// emoji per kind. Diagnostics with structured fields belong in pkg/logger;
// this package is for what the person running the command reads.
//
//	output.Success("Patched package.json (3 updated, 1 added)")
//	output.Warn("dfmt.keepLineBreaks has no title")
//	output.Step("dfmt.braceStyle  string  allman")
//
// Verbose lines print only after SetVerbose(true).
package output
