package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// LogLevel controls how much the console prints
type LogLevel int

const (
	LogSilent LogLevel = iota
	LogError
	LogWarn
	LogInfo
	LogVerbose
	LogDebug
)

// Console is the leveled, colored output used by the CLI
type Console struct {
	level    LogLevel
	showTime bool
	output   io.Writer
	errorOut io.Writer
	indent   int

	errColor     *color.Color
	warnColor    *color.Color
	infoColor    *color.Color
	successColor *color.Color
	dimColor     *color.Color
	debugColor   *color.Color
	headerColor  *color.Color
}

// NewConsole creates a console writing to stdout and stderr
func NewConsole(level LogLevel) *Console {
	return NewConsoleWithWriters(level, os.Stdout, os.Stderr)
}

// NewConsoleWithWriters creates a console with explicit writers
func NewConsoleWithWriters(level LogLevel, out, errOut io.Writer) *Console {
	c := &Console{
		level:        level,
		showTime:     level >= LogVerbose,
		output:       out,
		errorOut:     errOut,
		errColor:     color.New(color.FgRed, color.Bold),
		warnColor:    color.New(color.FgYellow),
		infoColor:    color.New(color.FgBlue),
		successColor: color.New(color.FgGreen),
		dimColor:     color.New(color.FgHiBlack),
		debugColor:   color.New(color.FgMagenta),
		headerColor:  color.New(color.FgCyan, color.Bold),
	}

	useColors := shouldUseColors()
	for _, col := range []*color.Color{c.errColor, c.warnColor, c.infoColor, c.successColor, c.dimColor, c.debugColor, c.headerColor} {
		if useColors {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// LevelFromFlags maps the CLI verbosity flags to a level
func LevelFromFlags(verbose, quiet bool) LogLevel {
	switch {
	case quiet:
		return LogError
	case verbose:
		return LogVerbose
	}
	return LogInfo
}

// Level returns the configured level
func (c *Console) Level() LogLevel {
	return c.level
}

func (c *Console) Error(format string, args ...interface{}) {
	if c.level >= LogError {
		c.writeMessage(c.errorOut, "ERROR", c.errColor, format, args...)
	}
}

func (c *Console) Warn(format string, args ...interface{}) {
	if c.level >= LogWarn {
		c.writeMessage(c.errorOut, "WARN", c.warnColor, format, args...)
	}
}

func (c *Console) Info(format string, args ...interface{}) {
	if c.level >= LogInfo {
		c.writeMessage(c.output, "INFO", c.infoColor, format, args...)
	}
}

func (c *Console) Success(format string, args ...interface{}) {
	if c.level >= LogInfo {
		c.writeMessage(c.output, "DONE", c.successColor, format, args...)
	}
}

func (c *Console) Verbose(format string, args ...interface{}) {
	if c.level >= LogVerbose {
		c.writeMessage(c.output, "VERBOSE", c.dimColor, format, args...)
	}
}

func (c *Console) Debug(format string, args ...interface{}) {
	if c.level >= LogDebug {
		c.writeMessage(c.output, "DEBUG", c.debugColor, format, args...)
	}
}

// Progress prints a completed step
func (c *Console) Progress(format string, args ...interface{}) {
	if c.level >= LogInfo {
		fmt.Fprintf(c.output, "%s%s %s\n", c.getIndent(), c.successColor.Sprint("✓"), fmt.Sprintf(format, args...))
	}
}

// Section prints a header line
func (c *Console) Section(title string) {
	if c.level >= LogInfo {
		fmt.Fprintln(c.output, c.headerColor.Sprint(title))
	}
}

// List prints a bulleted item
func (c *Console) List(format string, args ...interface{}) {
	if c.level >= LogInfo {
		fmt.Fprintf(c.output, "%s- %s\n", c.getIndent(), fmt.Sprintf(format, args...))
	}
}

// Indent nests following List, Progress and message lines one level deeper
func (c *Console) Indent() {
	c.indent++
}

func (c *Console) Unindent() {
	if c.indent > 0 {
		c.indent--
	}
}

// Summary prints a title and its statistics in key order
func (c *Console) Summary(title string, stats map[string]interface{}) {
	if c.level < LogInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(c.output, "\n%s\n", c.headerColor.Sprint(title))
	for _, k := range keys {
		fmt.Fprintf(c.output, "   %s: %v\n", k, stats[k])
	}
}

func (c *Console) writeMessage(w io.Writer, level string, col *color.Color, format string, args ...interface{}) {
	var b strings.Builder
	b.WriteString(c.getIndent())
	if c.showTime {
		b.WriteString(c.dimColor.Sprint(time.Now().Format("15:04:05 ")))
	}
	b.WriteString(col.Sprintf("[%s]", level))
	b.WriteByte(' ')
	b.WriteString(fmt.Sprintf(format, args...))
	b.WriteByte('\n')

	fmt.Fprint(w, b.String())
}

func (c *Console) getIndent() string {
	return strings.Repeat("  ", c.indent)
}

// shouldUseColors follows NO_COLOR, FORCE_COLOR and TERM
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
