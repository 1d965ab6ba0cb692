package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pubmed-chat/internal/askapi"
	"pubmed-chat/internal/citation"
)

// Asker is the answer-service boundary. The HTTP client in internal/askapi
// implements it; tests substitute a scripted fake.
type Asker interface {
	Answer(ctx context.Context, question, model string) (askapi.Answer, error)
}

// phase is the request lifecycle state. The pending flag exposed to the
// presentation layer is derived from it, so "not pending but a request in
// flight" is unrepresentable.
type phase int

const (
	phaseIdle phase = iota
	phaseSubmitting
)

// Controller owns one conversation: the append-only transcript, the draft
// input, the selected model, and the lifecycle of at most one outstanding
// request against the answer service. The mutex is there because the request
// resolves on a background goroutine while the UI reads snapshots.
type Controller struct {
	mu    sync.RWMutex
	asker Asker

	transcript []Message
	draft      string
	model      string

	phase    phase
	question string // question captured for the outstanding turn
}

// NewController creates a session seeded with the greeting message
func NewController(asker Asker, model string) *Controller {
	c := &Controller{
		asker: asker,
		model: model,
	}
	c.transcript = append(c.transcript, Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   Greeting,
		Timestamp: time.Now(),
	})
	return c
}

// Snapshot returns a read-only copy of the session state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	transcript := make([]Message, len(c.transcript))
	copy(transcript, c.transcript)

	return Snapshot{
		Transcript: transcript,
		Draft:      c.draft,
		Model:      c.model,
		Pending:    c.phase == phaseSubmitting,
	}
}

// Pending reports whether a request is currently outstanding
func (c *Controller) Pending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase == phaseSubmitting
}

// SetDraft replaces the draft text verbatim
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// SetModel replaces the selected model identifier
func (c *Controller) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Submit begins a turn. It is a no-op returning false when the draft is
// empty after trimming or a request is already outstanding. On accept it
// appends the user message built from the untrimmed draft, clears the
// draft, and marks the request outstanding; the caller then runs Resolve
// to perform the request and settle the turn.
func (c *Controller) Submit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != phaseIdle {
		return false
	}
	if strings.TrimSpace(c.draft) == "" {
		return false
	}

	question := c.draft
	c.transcript = append(c.transcript, Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   question,
		Timestamp: time.Now(),
	})
	c.draft = ""
	c.question = question
	c.phase = phaseSubmitting

	return true
}

// Resolve performs the outstanding request and settles the turn with exactly
// one assistant message: the answer with its normalized citations on success,
// the fixed fallback with no citations on any failure. The turn always
// returns to idle; the underlying error is logged for diagnostics but never
// shown to the user. A failed turn does not affect subsequent turns.
func (c *Controller) Resolve(ctx context.Context) {
	c.mu.RLock()
	outstanding := c.phase == phaseSubmitting
	question := c.question
	model := c.model
	c.mu.RUnlock()

	if !outstanding {
		return
	}

	answer, err := c.asker.Answer(ctx, question, model)

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
	}

	if err != nil {
		log.Printf("ask failed: %v", err)
		msg.Content = ErrorFallback
	} else {
		msg.Content = answer.Answer
		if citations, ok := citation.Normalize(answer.Citations); ok {
			msg.Citations = citations
		}
	}

	c.transcript = append(c.transcript, msg)
	c.question = ""
	c.phase = phaseIdle
}
