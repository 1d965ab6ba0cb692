package session

import (
	"time"

	"pubmed-chat/internal/citation"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single transcript entry. Messages are immutable once
// appended; citations are set at creation and nil when the answer carried no
// source data (presence drives whether a Sources section is shown).
type Message struct {
	ID        string              `json:"id"`
	Role      Role                `json:"role"`
	Content   string              `json:"content"`
	Timestamp time.Time           `json:"timestamp"`
	Citations []citation.Citation `json:"citations,omitempty"`
}

// Snapshot is a read-only view of the session handed to the presentation
// layer: the transcript in append order plus the input and request state.
type Snapshot struct {
	Transcript []Message
	Draft      string
	Model      string
	Pending    bool
}

// Greeting is the seeded assistant message every session starts with
const Greeting = "Hello! I'm your AI research assistant specialized in diabetes research. " +
	"I can help you find information from peer-reviewed medical publications. What would you like to know?"

// ErrorFallback is the fixed user-facing content of a failed turn
const ErrorFallback = "Sorry, there was an error fetching the answer. Please try again."
