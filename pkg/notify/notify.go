// Package notify delivers short user-visible success and error messages.
//
// Workflows report outcomes through a Notifier rather than printing, so the
// same workflow can run under the console, a session, or a test recorder.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/pterm/pterm"
)

// Notifier receives workflow outcomes
type Notifier interface {
	Success(title, description string)
	Error(title string, err error)
}

// Console prints notifications with pterm prefixes
type Console struct {
	mu      sync.Mutex
	success pterm.PrefixPrinter
	failure pterm.PrefixPrinter
}

// NewConsole returns a console notifier writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{
		success: *pterm.Success.WithWriter(w),
		failure: *pterm.Error.WithWriter(w),
	}
}

// Success prints a success line, with the description on the next line if any
func (c *Console) Success(title, description string) {
	logger := logging.GetLogger("notify")
	logger.Info().Str("title", title).Str("description", description).Msg("success")

	c.mu.Lock()
	defer c.mu.Unlock()
	if description == "" {
		c.success.Println(title)
		return
	}
	c.success.Println(fmt.Sprintf("%s\n%s", title, description))
}

// Error prints an error line
func (c *Console) Error(title string, err error) {
	logger := logging.GetLogger("notify")
	logger.Error().Err(err).Str("title", title).Msg("failure")

	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		c.failure.Println(title)
		return
	}
	c.failure.Println(fmt.Sprintf("%s\n%s", title, err.Error()))
}

// Level distinguishes recorded notifications
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one recorded message
type Notification struct {
	Level       Level
	Title       string
	Description string
	Err         error
}

// Recorder keeps notifications in memory, used by tests and the JSON output mode
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// NewRecorder returns an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Success records a success
func (r *Recorder) Success(title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: LevelSuccess, Title: title, Description: description})
}

// Error records a failure
func (r *Recorder) Error(title string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := Notification{Level: LevelError, Title: title, Err: err}
	if err != nil {
		n.Description = err.Error()
	}
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications in order
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Filter returns recorded notifications of one level
func (r *Recorder) Filter(level Level) []Notification {
	var out []Notification
	for _, n := range r.All() {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

// Reset drops everything recorded
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Discard drops all notifications
type Discard struct{}

func (Discard) Success(string, string) {}
func (Discard) Error(string, error)    {}
