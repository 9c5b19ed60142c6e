// Package decision implements the modal decision service: workflows ask
// yes/no and free-text questions and block until a responder answers.
//
// Requests are queued and answered strictly in arrival order, so two
// workflows asking at the same time each get their own answer.
package decision

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/google/uuid"
)

const (
	DefaultConfirmTitle = "Confirm"
	DefaultConfirmText  = "Continue"
	DefaultCancelText   = "Cancel"
	DefaultPromptTitle  = "Input"
	DefaultPromptOK     = "OK"
)

// ConfirmOptions describes a yes/no question
type ConfirmOptions struct {
	Title       string
	Description string
	ConfirmText string
	CancelText  string

	// Destructive marks an irreversible action so the responder can warn
	Destructive bool
}

// PromptOptions describes a free-text question
type PromptOptions struct {
	Title        string
	Description  string
	Placeholder  string
	DefaultValue string
	ConfirmText  string
	CancelText   string
}

func (o ConfirmOptions) withDefaults() ConfirmOptions {
	if o.Title == "" {
		o.Title = DefaultConfirmTitle
	}
	if o.ConfirmText == "" {
		o.ConfirmText = DefaultConfirmText
	}
	if o.CancelText == "" {
		o.CancelText = DefaultCancelText
	}
	return o
}

func (o PromptOptions) withDefaults() PromptOptions {
	if o.Title == "" {
		o.Title = DefaultPromptTitle
	}
	if o.ConfirmText == "" {
		o.ConfirmText = DefaultPromptOK
	}
	if o.CancelText == "" {
		o.CancelText = DefaultCancelText
	}
	return o
}

// RequestKind tells confirm and prompt requests apart
type RequestKind int

const (
	KindConfirm RequestKind = iota
	KindPrompt
)

// Request is one pending question
type Request struct {
	ID      string
	Kind    RequestKind
	Confirm ConfirmOptions
	Prompt  PromptOptions
}

// Answer is the responder's reply to a Request. Value is ignored for confirms.
type Answer struct {
	Accepted bool
	Value    string
}

type pending struct {
	req   Request
	reply chan Answer
}

// Service queues decision requests in FIFO order
type Service struct {
	mu     sync.Mutex
	queue  []*pending
	signal chan struct{}
}

// NewService returns an empty decision queue
func NewService() *Service {
	return &Service{signal: make(chan struct{}, 1)}
}

// Confirm asks a yes/no question and blocks until it is answered or ctx ends
func (s *Service) Confirm(ctx context.Context, opts ConfirmOptions) (bool, error) {
	ans, err := s.ask(ctx, Request{Kind: KindConfirm, Confirm: opts.withDefaults()})
	if err != nil {
		return false, err
	}
	return ans.Accepted, nil
}

// Prompt asks for a value and blocks until it is answered or ctx ends.
// The value is trimmed; an empty value counts as declined.
func (s *Service) Prompt(ctx context.Context, opts PromptOptions) (string, bool, error) {
	ans, err := s.ask(ctx, Request{Kind: KindPrompt, Prompt: opts.withDefaults()})
	if err != nil {
		return "", false, err
	}
	value := strings.TrimSpace(ans.Value)
	if !ans.Accepted || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (s *Service) ask(ctx context.Context, req Request) (Answer, error) {
	logger := logging.GetLogger("decision")

	req.ID = uuid.NewString()
	p := &pending{req: req, reply: make(chan Answer, 1)}

	s.mu.Lock()
	s.queue = append(s.queue, p)
	s.mu.Unlock()
	s.wake()

	logger.Debug().Str("id", req.ID).Int("kind", int(req.Kind)).Msg("Decision requested")

	select {
	case ans := <-p.reply:
		logger.Debug().Str("id", req.ID).Bool("accepted", ans.Accepted).Msg("Decision answered")
		return ans, nil
	case <-ctx.Done():
		s.remove(req.ID)
		return Answer{}, ctx.Err()
	}
}

func (s *Service) wake() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Service) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.queue {
		if p.req.ID == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Pending returns the queued requests, oldest first
func (s *Service) Pending() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, 0, len(s.queue))
	for _, p := range s.queue {
		out = append(out, p.req)
	}
	return out
}

// Next blocks until a request is queued and returns the oldest one
func (s *Service) Next(ctx context.Context) (Request, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			req := s.queue[0].req
			s.mu.Unlock()
			return req, nil
		}
		s.mu.Unlock()

		select {
		case <-s.signal:
		case <-ctx.Done():
			return Request{}, ctx.Err()
		}
	}
}

// Resolve answers the request with the given id and removes it from the queue
func (s *Service) Resolve(id string, ans Answer) error {
	s.mu.Lock()
	var found *pending
	for i, p := range s.queue {
		if p.req.ID == id {
			found = p
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	remaining := len(s.queue)
	s.mu.Unlock()

	if found == nil {
		return errors.Newf(errors.ErrDecisionNotFound, "no pending decision %s", id)
	}
	found.reply <- ans
	if remaining > 0 {
		s.wake()
	}
	return nil
}

// Responder produces answers for requests, typically by asking the user
type Responder interface {
	Respond(ctx context.Context, req Request) (Answer, error)
}

// ResponderFunc adapts a function to Responder
type ResponderFunc func(ctx context.Context, req Request) (Answer, error)

// Respond calls f
func (f ResponderFunc) Respond(ctx context.Context, req Request) (Answer, error) {
	return f(ctx, req)
}

// Serve answers requests in order until ctx ends. A responder error declines
// the request so the asking workflow is never left waiting.
func Serve(ctx context.Context, svc *Service, r Responder) error {
	logger := logging.GetLogger("decision")
	for {
		req, err := svc.Next(ctx)
		if err != nil {
			return err
		}
		ans, err := r.Respond(ctx, req)
		if err != nil {
			logger.Warn().Err(err).Str("id", req.ID).Msg("Responder failed, declining")
			ans = Answer{}
		}
		// the asker may have gone away while we were responding
		if err := svc.Resolve(req.ID, ans); err != nil && !errors.IsErrorCode(err, errors.ErrDecisionNotFound) {
			return err
		}
	}
}
