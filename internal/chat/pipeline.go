// Package chat implements the send pipeline: it turns a draft into a user
// message, runs one round trip to the endpoint and settles the outcome as
// exactly one assistant message.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moecatalyst/moechat/internal/conversation"
	apierrors "github.com/moecatalyst/moechat/internal/errors"
	"github.com/moecatalyst/moechat/internal/logging"
	"github.com/moecatalyst/moechat/internal/models"
)

// previewWidth bounds message text written to the log
const previewWidth = 60

// Sender performs one round trip. api.Client and api.MockClient satisfy it.
type Sender interface {
	Send(ctx context.Context, message string) (string, error)
}

// Request is a submitted message awaiting its reply
type Request struct {
	ID      string
	Text    string
	Started time.Time
}

// Outcome describes how a request settled
type Outcome struct {
	Request  Request
	Message  models.Message
	Err      error
	Fallback bool
	Duration time.Duration
}

// Failed reports whether the round trip ended in an error
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Pipeline owns the conversation, the draft and the busy state
type Pipeline struct {
	sender  Sender
	store   *conversation.Store
	strings models.Strings
	logger  zerolog.Logger

	mu      sync.Mutex
	draft   string
	pending *Request
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithStrings sets the localized fallback and error texts
func WithStrings(s models.Strings) Option {
	return func(p *Pipeline) {
		p.strings = s
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithConversation uses an existing store instead of a new one
func WithConversation(store *conversation.Store) Option {
	return func(p *Pipeline) {
		if store != nil {
			p.store = store
		}
	}
}

// New creates a pipeline sending through sender
func New(sender Sender, opts ...Option) *Pipeline {
	p := &Pipeline{
		sender:  sender,
		store:   conversation.New(),
		strings: models.StringsFor(models.DefaultLocale),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With().Str("conversation", p.store.ID()).Logger()
	return p
}

// Conversation returns the message store
func (p *Pipeline) Conversation() *conversation.Store {
	return p.store
}

// Strings returns the localized texts in use
func (p *Pipeline) Strings() models.Strings {
	return p.strings
}

// SetDraft replaces the in-progress input
func (p *Pipeline) SetDraft(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = text
}

// Draft returns the in-progress input
func (p *Pipeline) Draft() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// Busy reports whether a request is in flight
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// CanSend reports whether the current draft would be accepted
func (p *Pipeline) CanSend() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending == nil && strings.TrimSpace(p.draft) != ""
}

// Pending returns the in-flight request, if any
func (p *Pipeline) Pending() (Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return Request{}, false
	}
	return *p.pending, true
}

// Begin accepts draft as the next user message.
//
// It appends the trimmed text, clears the draft and marks the pipeline busy.
// Blank drafts and calls made while busy are ignored and return false.
func (p *Pipeline) Begin(draft string) (Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	text := strings.TrimSpace(draft)
	if text == "" || p.pending != nil {
		return Request{}, false
	}

	p.store.Append(models.NewUserMessage(text))
	p.draft = ""

	req := Request{
		ID:      uuid.New().String(),
		Text:    text,
		Started: time.Now(),
	}
	p.pending = &req

	p.logger.Debug().
		Str("request_id", req.ID).
		Str("preview", logging.Preview(text, previewWidth)).
		Msg("message submitted")

	return req, true
}

// Exchange performs the round trip for req. A panic in the sender is
// returned as an error.
func (p *Pipeline) Exchange(ctx context.Context, req Request) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send panicked: %v", r)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRequestID(ctx, req.ID)
	return p.sender.Send(ctx, req.Text)
}

// Settle records the outcome of req as one assistant message and clears
// busy. It returns false when req is not the pending request.
func (p *Pipeline) Settle(req Request, reply string, err error) (Outcome, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending == nil || p.pending.ID != req.ID {
		return Outcome{}, false
	}
	p.pending = nil

	out := Outcome{
		Request:  req,
		Err:      err,
		Duration: logging.Since(req.Started),
	}

	var text string
	switch {
	case err != nil:
		text = p.strings.ConnectionError
	case reply == "":
		text = p.strings.FallbackReply
		out.Fallback = true
	default:
		text = reply
	}

	out.Message = models.NewAssistantMessage(text)
	p.store.Append(out.Message)

	if err != nil {
		p.logger.Warn().
			Err(err).
			Str("request_id", req.ID).
			Str("kind", apierrors.Classify(err).String()).
			Dur("duration", out.Duration).
			Msg("message failed")
	} else {
		p.logger.Info().
			Str("request_id", req.ID).
			Bool("fallback", out.Fallback).
			Dur("duration", out.Duration).
			Msg("reply received")
	}

	return out, true
}

// Submit runs Begin, Exchange and Settle in sequence.
// It returns false when the draft was not accepted.
func (p *Pipeline) Submit(ctx context.Context, draft string) (out Outcome, ok bool) {
	req, ok := p.Begin(draft)
	if !ok {
		return Outcome{}, false
	}

	var reply string
	err := fmt.Errorf("send interrupted")
	defer func() {
		out, _ = p.Settle(req, reply, err)
	}()

	reply, err = p.Exchange(ctx, req)
	return out, true
}
