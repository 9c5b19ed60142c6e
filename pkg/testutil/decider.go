package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/wrench/pkg/decision"
)

// ScriptedDecider answers decisions from queued replies and records what was asked.
// With an empty script confirms are declined and prompts cancelled.
type ScriptedDecider struct {
	mu       sync.Mutex
	confirms []bool
	prompts  []string

	Confirmed []decision.ConfirmOptions
	Prompted  []decision.PromptOptions

	// ConfirmErr is returned by every Confirm when set
	ConfirmErr error

	// OnConfirm runs before each confirm is answered, standing in for
	// whatever else happens while the user is deciding
	OnConfirm func(decision.ConfirmOptions)
}

// NewScriptedDecider returns a decider with no replies queued
func NewScriptedDecider() *ScriptedDecider {
	return &ScriptedDecider{}
}

// AcceptNext queues n accepted confirms
func (d *ScriptedDecider) AcceptNext(n int) *ScriptedDecider {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < n; i++ {
		d.confirms = append(d.confirms, true)
	}
	return d
}

// DeclineNext queues a declined confirm
func (d *ScriptedDecider) DeclineNext() *ScriptedDecider {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirms = append(d.confirms, false)
	return d
}

// AnswerNext queues a prompt reply; an empty reply cancels the prompt
func (d *ScriptedDecider) AnswerNext(value string) *ScriptedDecider {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prompts = append(d.prompts, value)
	return d
}

// Confirm pops the next confirm reply
func (d *ScriptedDecider) Confirm(_ context.Context, opts decision.ConfirmOptions) (bool, error) {
	if d.OnConfirm != nil {
		d.OnConfirm(opts)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Confirmed = append(d.Confirmed, opts)
	if d.ConfirmErr != nil {
		return false, d.ConfirmErr
	}
	if len(d.confirms) == 0 {
		return false, nil
	}
	reply := d.confirms[0]
	d.confirms = d.confirms[1:]
	return reply, nil
}

// Prompt pops the next prompt reply
func (d *ScriptedDecider) Prompt(_ context.Context, opts decision.PromptOptions) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Prompted = append(d.Prompted, opts)
	if len(d.prompts) == 0 {
		return "", false, nil
	}
	reply := d.prompts[0]
	d.prompts = d.prompts[1:]
	if reply == "" {
		return "", false, nil
	}
	return reply, true, nil
}
