package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCompile EventType = "compile"
	EventQuery   EventType = "query"
)

// Query operations, used as event and metric labels.
const (
	OpAccepts       = "accepts"
	OpMaxCopies     = "max_copies"
	OpDeterministic = "is_deterministic"
	OpTrace         = "trace"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton"`
}

// CompileEvent is emitted when a definition is turned into an automaton.
type CompileEvent struct {
	EventBase
	States   int  `json:"states"`
	Rejected int  `json:"rejected"` // construction calls that returned false
	IsError  bool `json:"is_error,omitempty"`
}

// QueryEvent is emitted after every simulation query.
type QueryEvent struct {
	EventBase
	Operation   string        `json:"operation"`
	InputLength int           `json:"input_length"`
	Result      bool          `json:"result"`
	Width       int           `json:"width,omitempty"` // peak active-set size, when measured
	Duration    time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCompile func(context.Context, *CompileEvent)
	OnQuery   func(context.Context, *QueryEvent)
}
