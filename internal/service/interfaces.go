package service

import (
	"context"
	"errors"

	"spica/internal/intelligence"
)

var (
	// ErrGenerationInFlight is returned when a generation is requested
	// while another one is still running.
	ErrGenerationInFlight = errors.New("a generation is already in flight")

	// ErrLLMDisabled is returned when generation is requested but the LLM
	// subsystem is disabled by configuration.
	ErrLLMDisabled = errors.New("llm is disabled")

	// ErrNoActiveScene is returned when an operation needs an active scene
	// and none is set.
	ErrNoActiveScene = errors.New("no active scene")

	// ErrInvalidResponse is returned when a model reply fails validation;
	// nothing from the reply is applied.
	ErrInvalidResponse = errors.New("invalid generation response")
)

// TimelineResult reports what a timeline generation produced and where it
// was placed.
type TimelineResult struct {
	TabIDs []string // created workbench tabs, in reply order
	Reply  *intelligence.TimelineReply
}

// DescriptionResult reports a generated event description.
type DescriptionResult struct {
	DescriptionID string
	Text          string
}

// GenerationService runs the full prompt pipeline: assemble context, call
// the model, decode the reply, and apply it to the store.
type GenerationService interface {
	// GenerateTimeline sends the user's request with full story context and
	// applies the suggested tabs to the workbench. All-or-nothing: an
	// invalid reply leaves the store untouched.
	GenerateTimeline(ctx context.Context, userInput string) (*TimelineResult, error)

	// DescribeEvent generates prose for one timeline event and attaches it
	// to the event's tab as an event-scoped description.
	DescribeEvent(ctx context.Context, tabID, eventID, userInput string) (*DescriptionResult, error)

	// PreviewContext renders the context block that the next generation
	// would send, without calling the model.
	PreviewContext() (string, error)

	// InFlight reports whether a generation is currently running.
	InFlight() bool
}
