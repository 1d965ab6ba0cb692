package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pubmed-chat/internal/askapi"
)

// scriptedAsker returns canned responses in order, recording each question
type scriptedAsker struct {
	answers   []askapi.Answer
	errs      []error
	idx       int
	questions []string
	models    []string
}

func (s *scriptedAsker) Answer(_ context.Context, question, model string) (askapi.Answer, error) {
	s.questions = append(s.questions, question)
	s.models = append(s.models, model)

	i := s.idx
	s.idx++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var ans askapi.Answer
	if i < len(s.answers) {
		ans = s.answers[i]
	}
	return ans, err
}

func newTestController(asker Asker) *Controller {
	return NewController(asker, askapi.ModelLLM)
}

func TestSeededGreeting(t *testing.T) {
	c := newTestController(&scriptedAsker{})

	snap := c.Snapshot()
	if len(snap.Transcript) != 1 {
		t.Fatalf("fresh session has %d messages, want 1", len(snap.Transcript))
	}
	msg := snap.Transcript[0]
	if msg.Role != RoleAssistant {
		t.Errorf("seed role = %q, want assistant", msg.Role)
	}
	if msg.Content != Greeting {
		t.Errorf("seed content = %q", msg.Content)
	}
	if msg.Citations != nil {
		t.Error("seed message must not carry citations")
	}
	if snap.Pending {
		t.Error("fresh session must not be pending")
	}
}

func TestEmptyDraftRejected(t *testing.T) {
	asker := &scriptedAsker{}
	c := newTestController(asker)

	for _, draft := range []string{"", "   ", "\t\n  "} {
		c.SetDraft(draft)
		if c.Submit() {
			t.Errorf("Submit accepted draft %q", draft)
		}
		snap := c.Snapshot()
		if len(snap.Transcript) != 1 {
			t.Errorf("transcript grew on rejected draft %q", draft)
		}
		if snap.Pending {
			t.Errorf("pending set on rejected draft %q", draft)
		}
		if snap.Draft != draft {
			t.Errorf("rejected draft %q was cleared", draft)
		}
	}
	if len(asker.questions) != 0 {
		t.Errorf("rejected submissions reached the service: %v", asker.questions)
	}
}

func TestSubmitAppendsUserMessageAndClearsDraft(t *testing.T) {
	c := newTestController(&scriptedAsker{})

	c.SetDraft("  What is HbA1c?  ")
	if !c.Submit() {
		t.Fatal("Submit rejected a valid draft")
	}

	snap := c.Snapshot()
	if len(snap.Transcript) != 2 {
		t.Fatalf("transcript length = %d during pending window, want 2", len(snap.Transcript))
	}
	msg := snap.Transcript[1]
	if msg.Role != RoleUser {
		t.Errorf("role = %q, want user", msg.Role)
	}
	// The user message carries the draft untrimmed
	if msg.Content != "  What is HbA1c?  " {
		t.Errorf("content = %q, want the untrimmed draft", msg.Content)
	}
	if snap.Draft != "" {
		t.Errorf("draft = %q after accepted submission, want empty", snap.Draft)
	}
	if !snap.Pending {
		t.Error("pending = false with a request outstanding")
	}
}

func TestDoubleSubmitRejectedWhilePending(t *testing.T) {
	c := newTestController(&scriptedAsker{})

	c.SetDraft("first")
	if !c.Submit() {
		t.Fatal("first Submit rejected")
	}

	c.SetDraft("second")
	if c.Submit() {
		t.Fatal("second Submit accepted while pending")
	}

	snap := c.Snapshot()
	if len(snap.Transcript) != 2 {
		t.Errorf("transcript length = %d, want 2 (no extra user message)", len(snap.Transcript))
	}
	if snap.Draft != "second" {
		t.Errorf("rejected draft was cleared: %q", snap.Draft)
	}
}

func TestResolveSuccessWithCitations(t *testing.T) {
	asker := &scriptedAsker{
		answers: []askapi.Answer{{
			Answer:    "HbA1c measures average blood glucose.",
			Citations: json.RawMessage(`[{"title":"Glycemic Control Study","journal":"Diabetes Care","url":"http://example.org/1","relevance":0.91}]`),
		}},
	}
	c := newTestController(asker)

	c.SetDraft("What is HbA1c?")
	if !c.Submit() {
		t.Fatal("Submit rejected")
	}
	c.Resolve(context.Background())

	snap := c.Snapshot()
	if len(snap.Transcript) != 3 {
		t.Fatalf("transcript length = %d, want 3", len(snap.Transcript))
	}
	if snap.Pending {
		t.Error("pending = true after settle")
	}

	msg := snap.Transcript[2]
	if msg.Role != RoleAssistant {
		t.Errorf("role = %q, want assistant", msg.Role)
	}
	if msg.Content != "HbA1c measures average blood glucose." {
		t.Errorf("content = %q", msg.Content)
	}
	if len(msg.Citations) != 1 {
		t.Fatalf("citations length = %d, want 1", len(msg.Citations))
	}
	if msg.Citations[0].Relevance != 0.91 {
		t.Errorf("relevance = %v, want 0.91", msg.Citations[0].Relevance)
	}

	if len(asker.questions) != 1 || asker.questions[0] != "What is HbA1c?" {
		t.Errorf("service saw questions %v", asker.questions)
	}
	if asker.models[0] != askapi.ModelLLM {
		t.Errorf("service saw model %q", asker.models[0])
	}
}

func TestResolveNoCitationsField(t *testing.T) {
	asker := &scriptedAsker{
		answers: []askapi.Answer{{Answer: "plain answer"}},
	}
	c := newTestController(asker)

	c.SetDraft("q")
	c.Submit()
	c.Resolve(context.Background())

	snap := c.Snapshot()
	msg := snap.Transcript[len(snap.Transcript)-1]
	if msg.Citations != nil {
		t.Errorf("citations = %v, want absent", msg.Citations)
	}
}

func TestResolveFailureAppendsFallback(t *testing.T) {
	asker := &scriptedAsker{errs: []error{errors.New("connection refused")}}
	c := newTestController(asker)

	c.SetDraft("q")
	c.Submit()
	c.Resolve(context.Background())

	snap := c.Snapshot()
	if len(snap.Transcript) != 3 {
		t.Fatalf("transcript length = %d, want 3", len(snap.Transcript))
	}
	if snap.Pending {
		t.Error("pending = true after failure")
	}

	msg := snap.Transcript[2]
	if msg.Role != RoleAssistant {
		t.Errorf("role = %q, want assistant", msg.Role)
	}
	if msg.Content != ErrorFallback {
		t.Errorf("content = %q, want the fixed fallback", msg.Content)
	}
	if msg.Citations != nil {
		t.Error("failure message must not carry citations")
	}
}

func TestFailedTurnDoesNotPoisonNextTurn(t *testing.T) {
	asker := &scriptedAsker{
		errs:    []error{errors.New("boom"), nil},
		answers: []askapi.Answer{{}, {Answer: "recovered"}},
	}
	c := newTestController(asker)

	c.SetDraft("first")
	c.Submit()
	c.Resolve(context.Background())

	c.SetDraft("second")
	if !c.Submit() {
		t.Fatal("submission after a failed turn rejected")
	}
	c.Resolve(context.Background())

	snap := c.Snapshot()
	if len(snap.Transcript) != 5 {
		t.Fatalf("transcript length = %d, want 5", len(snap.Transcript))
	}
	last := snap.Transcript[4]
	if last.Content != "recovered" {
		t.Errorf("content = %q, want recovered", last.Content)
	}
}

func TestDraftClearedRegardlessOfOutcome(t *testing.T) {
	asker := &scriptedAsker{errs: []error{errors.New("down")}}
	c := newTestController(asker)

	c.SetDraft("will fail")
	c.Submit()

	if snap := c.Snapshot(); snap.Draft != "" {
		t.Errorf("draft = %q before settle, want empty", snap.Draft)
	}

	c.Resolve(context.Background())

	if snap := c.Snapshot(); snap.Draft != "" {
		t.Errorf("draft = %q after settle, want empty", snap.Draft)
	}
}

func TestResolveWithoutSubmitIsNoop(t *testing.T) {
	c := newTestController(&scriptedAsker{})

	c.Resolve(context.Background())

	snap := c.Snapshot()
	if len(snap.Transcript) != 1 {
		t.Errorf("transcript length = %d, want 1", len(snap.Transcript))
	}
	if snap.Pending {
		t.Error("pending set by a no-op Resolve")
	}
}

func TestSetModelAffectsNextTurn(t *testing.T) {
	asker := &scriptedAsker{answers: []askapi.Answer{{Answer: "a"}}}
	c := newTestController(asker)

	c.SetModel(askapi.ModelGemini)
	c.SetDraft("q")
	c.Submit()
	c.Resolve(context.Background())

	if asker.models[0] != askapi.ModelGemini {
		t.Errorf("service saw model %q, want gemini", asker.models[0])
	}
}

func TestMessageIDsUnique(t *testing.T) {
	asker := &scriptedAsker{answers: []askapi.Answer{{Answer: "a"}, {Answer: "b"}}}
	c := newTestController(asker)

	for _, q := range []string{"one", "two"} {
		c.SetDraft(q)
		c.Submit()
		c.Resolve(context.Background())
	}

	seen := map[string]bool{}
	for _, msg := range c.Snapshot().Transcript {
		if msg.ID == "" {
			t.Error("message with empty id")
		}
		if seen[msg.ID] {
			t.Errorf("duplicate message id %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}
