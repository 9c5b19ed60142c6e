// Package ui renders command output as rich terminal tables, plain text or
// JSON. Commands hand their results to a Renderer and never format output
// themselves.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/ui/json"
	"github.com/arthur-debert/wrench/pkg/ui/terminal"
	"github.com/arthur-debert/wrench/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a catalog, backup list, import analysis or display table.
	// Other values are printed as messages, or encoded as is in JSON.
	RenderResult(result interface{}) error

	RenderError(err error) error

	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format, detecting terminal
// capabilities when format is FormatAuto
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
