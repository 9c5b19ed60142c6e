// Package terminal provides rich terminal output with colors and tables
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/wrench/pkg/ui/display"
	"github.com/arthur-debert/wrench/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Renderer draws tables with pterm and styles text with lipgloss
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders catalog and workflow results as styled tables
func (r *Renderer) RenderResult(result interface{}) error {
	tables, ok := display.Tables(result)
	if !ok {
		return r.RenderMessage(fmt.Sprint(result))
	}
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(r.output); err != nil {
				return err
			}
		}
		if err := r.renderTable(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderTable(t display.Table) error {
	title := styles.GetStyle("Header")
	if t.Server != nil {
		title = styles.Server(*t.Server).MarginBottom(1)
	}
	if _, err := fmt.Fprintln(r.output, title.Render(t.Title)); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(r.output, styles.MergeStyles("Muted", "Indent").Render(t.Empty))
		return err
	}

	data := pterm.TableData{t.Header}
	for _, row := range t.Rows {
		style, styled := tagStyle(row.Tag)
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			if styled {
				c = style.Render(c)
			}
			cells[i] = c
		}
		data = append(data, cells)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(r.output).Render()
}

func tagStyle(tag string) (lipgloss.Style, bool) {
	switch tag {
	case display.TagSource:
		return styles.GetStyle("Source"), true
	case display.TagTarget:
		return styles.GetStyle("Target"), true
	case display.TagNew:
		return styles.GetStyle("StatusNew"), true
	case display.TagConflict:
		return styles.GetStyle("StatusConflict"), true
	case display.TagUnchanged:
		return styles.GetStyle("StatusUnchanged"), true
	default:
		return lipgloss.Style{}, false
	}
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err)))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}
