// Package genkit provides code generation utilities.
package genkit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tlipoca9/guardgen/ir"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorGray    = "\033[90m"
)

// Emoji for log levels
const (
	EmojiInfo  = "📦"
	EmojiWarn  = "⚠️"
	EmojiError = "❌"
	EmojiDone  = "✅"
	EmojiFind  = "🔍"
	EmojiWrite = "📝"
	EmojiLoad  = "📂"
)

type level struct {
	emoji string
	label string
	color string
}

var (
	levelInfo  = level{EmojiInfo, "INFO", colorBlue}
	levelWarn  = level{EmojiWarn, "WARN", colorYellow}
	levelError = level{EmojiError, "ERROR", colorRed}
	levelDone  = level{EmojiDone, "DONE", colorGreen}
	levelFind  = level{EmojiFind, "FIND", colorCyan}
	levelWrite = level{EmojiWrite, "WRITE", colorGreen}
	levelLoad  = level{EmojiLoad, "LOAD", colorBlue}
)

// Logger provides styled logging for code generators.
type Logger struct {
	w       io.Writer
	noColor bool
}

// NewLogger creates a new Logger writing to stdout.
func NewLogger() *Logger {
	return &Logger{w: os.Stdout}
}

// NewLoggerWithWriter creates a new Logger with custom writer.
func NewLoggerWithWriter(w io.Writer) *Logger {
	return &Logger{w: w}
}

// SetNoColor disables color output.
func (l *Logger) SetNoColor(noColor bool) *Logger {
	l.noColor = noColor
	return l
}

func (l *Logger) format(format string, args ...any) string {
	highlighted := make([]any, len(args))
	for i, arg := range args {
		highlighted[i] = l.highlight(arg)
	}
	return fmt.Sprintf(format, highlighted...)
}

// highlight colors an argument by what it looks like:
// numbers yellow, modules and paths magenta, identifiers cyan.
func (l *Logger) highlight(arg any) any {
	switch v := arg.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return l.paint(colorYellow, fmt.Sprint(v))
	case TSModule:
		return l.paint(colorMagenta, fmt.Sprintf("'%s'", v))
	case ir.Position:
		return l.paint(colorGray, v.String())
	case string:
		if isPathLike(v) {
			return l.paint(colorMagenta, fmt.Sprintf("'%s'", v))
		}
		if v != "" && !strings.Contains(v, " ") && v[0] >= 'A' && v[0] <= 'Z' {
			return l.paint(colorCyan, v)
		}
		return v
	default:
		return arg
	}
}

func isPathLike(s string) bool {
	return strings.Contains(s, "/") || (strings.Contains(s, ".") && !strings.Contains(s, " "))
}

func (l *Logger) paint(c, s string) string {
	if l.noColor {
		return s
	}
	return c + s + colorReset
}

func (l *Logger) color(c string) string {
	if l.noColor {
		return ""
	}
	return c
}

func (l *Logger) log(lv level, format string, args ...any) {
	pad := ""
	if len(lv.label) == 4 {
		pad = " "
	}
	_, _ = fmt.Fprintf(l.w, "%s %s%s[%s]%s %s\n",
		lv.emoji, pad, l.color(lv.color), lv.label, l.color(colorReset), l.format(format, args...))
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) { l.log(levelInfo, format, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) { l.log(levelWarn, format, args...) }

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) { l.log(levelError, format, args...) }

// Done logs a completion message.
func (l *Logger) Done(format string, args ...any) { l.log(levelDone, format, args...) }

// Find logs a discovery message.
func (l *Logger) Find(format string, args ...any) { l.log(levelFind, format, args...) }

// Write logs a file write message.
func (l *Logger) Write(format string, args ...any) { l.log(levelWrite, format, args...) }

// Load logs a loading message.
func (l *Logger) Load(format string, args ...any) { l.log(levelLoad, format, args...) }

// Item logs an indented item under the previous log entry.
func (l *Logger) Item(format string, args ...any) {
	_, _ = fmt.Fprintf(l.w, "           %s•%s %s\n", l.color(colorGray), l.color(colorReset), l.format(format, args...))
}

// Diagnostic logs d at the matching level.
func (l *Logger) Diagnostic(d Diagnostic) {
	loc := ""
	if d.File != "" {
		loc = ir.Position{File: d.File, Line: d.Line, Column: d.Column}.String() + ": "
	}
	switch d.Severity {
	case DiagnosticError:
		l.Error("%s[%s] %s%s", d.Tool, d.Code, loc, d.Message)
	case DiagnosticWarning:
		l.Warn("%s[%s] %s%s", d.Tool, d.Code, loc, d.Message)
	default:
		l.Item("%s[%s] %s%s", d.Tool, d.Code, loc, d.Message)
	}
}
