package decision

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// ConsoleResponder answers requests by reading lines from a reader
type ConsoleResponder struct {
	in  *bufio.Reader
	out io.Writer

	// AssumeYes accepts every confirm and every prompt default without reading
	AssumeYes bool
}

// NewConsoleResponder returns a responder reading from in and writing questions to out.
// Pass an existing *bufio.Reader to share buffered input with another reader.
func NewConsoleResponder(in io.Reader, out io.Writer) *ConsoleResponder {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &ConsoleResponder{in: br, out: out}
}

// Respond implements Responder
func (c *ConsoleResponder) Respond(ctx context.Context, req Request) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	switch req.Kind {
	case KindConfirm:
		return c.confirm(req.Confirm)
	case KindPrompt:
		return c.prompt(req.Prompt)
	default:
		return Answer{}, fmt.Errorf("unknown decision kind %d", req.Kind)
	}
}

func (c *ConsoleResponder) confirm(opts ConfirmOptions) (Answer, error) {
	header := pterm.Info
	if opts.Destructive {
		header = pterm.Warning
	}
	_, _ = fmt.Fprintln(c.out, header.Sprint(opts.Title))
	if opts.Description != "" {
		_, _ = fmt.Fprintln(c.out, opts.Description)
	}

	if c.AssumeYes {
		_, _ = fmt.Fprintf(c.out, "%s: yes (--yes)\n", opts.ConfirmText)
		return Answer{Accepted: true}, nil
	}

	_, _ = fmt.Fprintf(c.out, "%s? [y/N]: ", opts.ConfirmText)
	line, err := c.readLine()
	if err != nil {
		return Answer{}, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return Answer{Accepted: true}, nil
	default:
		return Answer{Accepted: false}, nil
	}
}

func (c *ConsoleResponder) prompt(opts PromptOptions) (Answer, error) {
	_, _ = fmt.Fprintln(c.out, pterm.Info.Sprint(opts.Title))
	if opts.Description != "" {
		_, _ = fmt.Fprintln(c.out, opts.Description)
	}

	if c.AssumeYes {
		_, _ = fmt.Fprintf(c.out, "> %s (--yes)\n", opts.DefaultValue)
		return Answer{Accepted: opts.DefaultValue != "", Value: opts.DefaultValue}, nil
	}

	if opts.DefaultValue != "" {
		_, _ = fmt.Fprintf(c.out, "[%s] > ", opts.DefaultValue)
	} else if opts.Placeholder != "" {
		_, _ = fmt.Fprintf(c.out, "(%s) > ", opts.Placeholder)
	} else {
		_, _ = fmt.Fprint(c.out, "> ")
	}

	line, err := c.readLine()
	if err != nil {
		return Answer{}, err
	}
	if line == "" {
		// enter keeps the default
		return Answer{Accepted: opts.DefaultValue != "", Value: opts.DefaultValue}, nil
	}
	return Answer{Accepted: true, Value: line}, nil
}

func (c *ConsoleResponder) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		if err == io.EOF {
			// closed input declines
			return "", nil
		}
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
