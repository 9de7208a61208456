package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ FILE NOT FOUND: stlyes.scss
//	   Cannot find file 'stlyes.scss'.
//
//	   Did you mean: styles.scss?
//
//	   → Get help: cascade check --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	}

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	// Header line with context
	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Problem != "" && opts.Context != "" {
		bodyColor.Fprintf(&b, "   %s\n", opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// DiagnosticOptions configures a rendered syntax diagnostic
type DiagnosticOptions struct {
	File    string
	Line    int // One-based line number
	Column  int // One-based column number
	Message string

	// Source is the offending source line, shown with a caret under the
	// reported column when non-empty
	Source string

	NoColor bool
}

// FormatDiagnostic renders a compiler-style diagnostic:
//
//	styles.scss:3:7: colon expected
//	  $gap 8px;
//	       ^
func FormatDiagnostic(opts DiagnosticOptions) string {
	var b strings.Builder

	bold := color.New(color.Bold)
	red := color.New(color.FgRed, color.Bold)
	gray := color.New(color.FgHiBlack)
	if opts.NoColor {
		bold.DisableColor()
		red.DisableColor()
		gray.DisableColor()
	}

	bold.Fprintf(&b, "%s:%d:%d: ", opts.File, opts.Line, opts.Column)
	red.Fprint(&b, opts.Message)
	b.WriteString("\n")

	if opts.Source != "" {
		fmt.Fprintf(&b, "  %s\n", strings.TrimRight(opts.Source, "\r\n"))
		if opts.Column > 0 {
			gray.Fprintf(&b, "  %s^\n", strings.Repeat(" ", opts.Column-1))
		}
	}

	return b.String()
}

// WriteDiagnostic writes a formatted diagnostic to the writer
func WriteDiagnostic(w io.Writer, opts DiagnosticOptions) {
	fmt.Fprint(w, FormatDiagnostic(opts))
}

// FileNotFoundError creates a standardized file not found error
func FileNotFoundError(path string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "FILE NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find file '%s'.", path),
		Suggestions: suggestions,
		HelpCommands: []string{
			"Get help: cascade check --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// CheckError creates a standardized syntax check failure summary
func CheckError(message string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "CHECK FAILED",
		Problem:     message,
		Suggestions: suggestions,
		HelpCommands: []string{
			"Get help: cascade check --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "CONFIGURATION ERROR",
		Problem:     message,
		Suggestions: suggestions,
		HelpCommands: []string{
			"View config: cat cascade.yml",
			"Get help: cascade --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// Warning creates a standardized warning message
func Warning(message string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelWarning,
		Problem:     message,
		Suggestions: suggestions,
		NoColor:     noColor,
	}
	return FormatError(opts)
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	}
	return FormatError(opts)
}
