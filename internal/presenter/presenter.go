// Package presenter turns readings into short display frames and hands
// them to whatever shows them: a tray, a terminal, an HTTP client.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"menumeters/internal/models"
)

// Presenter displays frames. Present is called from the sampling loop and
// must return quickly.
type Presenter interface {
	Present(ctx context.Context, f models.Frame) error
}

// Multi fans a frame out to several presenters. Every presenter is called
// even if an earlier one fails.
type Multi []Presenter

func (m Multi) Present(ctx context.Context, f models.Frame) error {
	var errs []error
	for _, p := range m {
		if err := p.Present(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))
	unitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	titleStyle = map[models.Category]lipgloss.Style{
		models.CategoryCPU:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C678DD")).Width(8),
		models.CategoryMemory:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379")).Width(8),
		models.CategoryNetwork: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75")).Width(8),
		models.CategoryDisk:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B")).Width(8),
	}
)

// Console writes one styled line per frame.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Present(_ context.Context, f models.Frame) error {
	_, err := fmt.Fprintln(c.w, RenderLine(f))
	return err
}

// RenderLine renders a frame as a single terminal line, e.g.
// "Network  1.05 MB/s  12 KB/s".
func RenderLine(f models.Frame) string {
	style, ok := titleStyle[f.Category]
	if !ok {
		style = lipgloss.NewStyle().Width(8)
	}

	parts := make([]string, 0, len(f.Text))
	for i, text := range f.Text {
		part := textStyle.Render(strings.TrimSpace(text))
		if i < len(f.Units) {
			part += " " + unitStyle.Render(f.Units[i])
		}
		parts = append(parts, part)
	}
	return style.Render(f.Title) + strings.Join(parts, "  ")
}
