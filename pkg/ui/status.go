// Package ui prints the one-line status messages shared by the CLIs.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	salmonPink = lipgloss.Color("#FFB3BA") // failures
	mintGreen  = lipgloss.Color("#A8E6CF") // success
	amber      = lipgloss.Color("#FFD8A8") // warnings
)

const (
	GlyphSuccess = "✓"
	GlyphFailure = "✗"
	GlyphWarning = "⚠"
)

// Printer writes glyph-prefixed status lines to w. Colors are only emitted
// when w is a terminal.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter binds a printer to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, renderer: lipgloss.NewRenderer(w)}
}

// Success prints "✓ <message>".
func (p *Printer) Success(format string, args ...any) {
	p.line(mintGreen, GlyphSuccess, format, args...)
}

// Failure prints "✗ <message>".
func (p *Printer) Failure(format string, args ...any) {
	p.line(salmonPink, GlyphFailure, format, args...)
}

// Warning prints "⚠ <message>".
func (p *Printer) Warning(format string, args ...any) {
	p.line(amber, GlyphWarning, format, args...)
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) line(color lipgloss.Color, glyph, format string, args ...any) {
	style := p.renderer.NewStyle().Foreground(color)
	fmt.Fprintf(p.w, "%s %s\n", style.Render(glyph), fmt.Sprintf(format, args...))
}
