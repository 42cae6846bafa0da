// Package ports defines the interfaces the application layer depends on.
// Adapters implement them so use cases never import infrastructure.
//
// Port Design Principles:
//   - Context as first parameter for cancellation and request-scoped values
//   - Accept domain values, never transport DTOs
//   - Keep interfaces small and focused
package ports

import (
	"context"
)

// Build outcomes reported to a BuildRecorder.
const (
	OutcomeBuilt    = "built"
	OutcomeRejected = "rejected"
)

// BuildRecorder observes the result of every build performed by the
// application layer. Implementations must be safe for concurrent use because
// batch builds report from several goroutines.
//
// Example usage in the application layer:
//
//	book, err := builder.Build()
//	s.recorder.RecordBuild(ctx, "book", violationFields(err))
type BuildRecorder interface {
	// RecordBuild records one build of entity. violations holds the field of
	// every failed rule; an empty slice means the build succeeded.
	RecordBuild(ctx context.Context, entity string, violations []string)
}

// NopRecorder is a BuildRecorder that discards everything.
type NopRecorder struct{}

// RecordBuild implements BuildRecorder.
func (NopRecorder) RecordBuild(context.Context, string, []string) {}

// Outcome returns the outcome label for a set of violations.
func Outcome(violations []string) string {
	if len(violations) == 0 {
		return OutcomeBuilt
	}

	return OutcomeRejected
}
