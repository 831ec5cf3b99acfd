// Package output prints status lines for CLI commands.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes status lines to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer on stdout/stderr. Colors are enabled when
// stdout is a terminal and NO_COLOR is unset.
func NewPrinter() *Printer {
	return NewPrinterTo(os.Stdout, os.Stderr, ResolveColors(os.Stdout))
}

// NewPrinterTo creates a printer with explicit writers
func NewPrinterTo(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{
		out:       out,
		err:       errOut,
		useColors: useColors,
	}
}

// ResolveColors reports whether colored output should be used for f
func ResolveColors(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(p.out, color.FgCyan, "", format, args...)
}

// Progress prints a step that is in progress
func (p *Printer) Progress(format string, args ...interface{}) {
	p.line(p.out, color.FgCyan, "⏳ ", format, args...)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(p.out, color.FgGreen, "✓ ", format, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(p.err, color.FgYellow, "⚠️  ", format, args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.err, color.FgRed, "❌ ", format, args...)
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Bold returns text in bold
func (p *Printer) Bold(text string) string {
	if p.useColors {
		c := color.New(color.Bold)
		c.EnableColor()
		return c.Sprint(text)
	}
	return text
}

func (p *Printer) line(w io.Writer, attr color.Attribute, prefix, format string, args ...interface{}) {
	if p.useColors {
		c := color.New(attr)
		c.EnableColor()
		c.Fprintf(w, prefix+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}
