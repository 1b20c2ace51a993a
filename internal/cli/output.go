package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// printer writes styled status lines. Colors are only used when the
// writer is a terminal.
type printer struct {
	w       io.Writer
	verbose bool

	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	step    lipgloss.Style
}

func newPrinter(w io.Writer, verbose bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		verbose: verbose,
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("6")),
		step:    r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Success prints a completed operation.
func (p *printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints a failure that needs attention.
func (p *printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, p.failure.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Info prints a status update.
func (p *printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, p.info.Render(fmt.Sprintf(format, args...)))
}

// Step prints an indented sub-item.
func (p *printer) Step(format string, args ...any) {
	fmt.Fprintln(p.w, p.step.Render("   "+fmt.Sprintf(format, args...)))
}

// Verbose prints a detail line only in verbose mode.
func (p *printer) Verbose(format string, args ...any) {
	if p.verbose {
		fmt.Fprintln(p.w, p.step.Render("· "+fmt.Sprintf(format, args...)))
	}
}
