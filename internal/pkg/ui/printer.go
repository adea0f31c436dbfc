package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes status lines, styled when the writer is a color terminal.
type Printer struct {
	out    io.Writer
	styles *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

// NewPrinter creates a Printer for out. Styles resolve against out's own
// color profile, so plain writers get plain text.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		styles: &styles{
			title: r.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")),
			success: r.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42")),
			warning: r.NewStyle().
				Foreground(lipgloss.Color("214")),
			info: r.NewStyle().
				Foreground(lipgloss.Color("245")),
		},
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Println writes an unstyled line.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Title writes a heading line.
func (p *Printer) Title(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.title.Render(fmt.Sprintf(format, args...)))
}

// Success writes a "✓ ..." line.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warning writes a "Warning: ..." line.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.warning.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Info writes a dimmed hint line.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.info.Render(fmt.Sprintf(format, args...)))
}
