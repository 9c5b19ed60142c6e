// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/wrench/pkg/ui/display"
)

// Renderer writes tab-aligned tables without colors
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders catalog and workflow results as aligned columns
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
	if _, err := fmt.Fprintf(r.output, "%s\n", t.Title); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintf(r.output, "  %s\n", t.Empty)
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\n", strings.ToUpper(strings.Join(t.Header, "\t")))
	for _, row := range t.Rows {
		fmt.Fprintf(tw, "  %s\n", strings.Join(row.Cells, "\t"))
	}
	return tw.Flush()
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
