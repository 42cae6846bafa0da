package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker implements HealthChecker for testing.
type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string {
	return s.name
}

func (s *stubChecker) Check(context.Context) error {
	return s.err
}

// funcChecker runs fn as its check.
type funcChecker struct {
	name string
	fn   func(context.Context) error
}

func (f funcChecker) Name() string { return f.name }

func (f funcChecker) Check(ctx context.Context) error { return f.fn(ctx) }

func TestNewHealthRegistry(t *testing.T) {
	registry := NewHealthRegistry()

	require.NotNil(t, registry)
	assert.Empty(t, registry.Names())
}

func TestRegister_DuplicateName(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "book-rules"}))

	err := registry.Register(&stubChecker{name: "book-rules"})

	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "book-rules")
	assert.Equal(t, []string{"book-rules"}, registry.Names())
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name           string
		checkers       []HealthChecker
		expectedStatus HealthStatus
		expectedMsgs   map[string]string
	}{
		{
			name:           "no checkers is healthy",
			expectedStatus: HealthStatusHealthy,
			expectedMsgs:   map[string]string{},
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "book-rules"},
				&stubChecker{name: "phone-director"},
			},
			expectedStatus: HealthStatusHealthy,
			expectedMsgs:   map[string]string{"book-rules": "", "phone-director": ""},
		},
		{
			name: "one unhealthy",
			checkers: []HealthChecker{
				&stubChecker{name: "book-rules", err: errors.New("canary rejected")},
				&stubChecker{name: "phone-director"},
			},
			expectedStatus: HealthStatusUnhealthy,
			expectedMsgs:   map[string]string{"book-rules": "canary rejected", "phone-director": ""},
		},
		{
			name: "every check reported",
			checkers: []HealthChecker{
				&stubChecker{name: "book-rules", err: errors.New("canary rejected")},
				&stubChecker{name: "phone-director", err: errors.New("unknown phone preset android")},
			},
			expectedStatus: HealthStatusUnhealthy,
			expectedMsgs: map[string]string{
				"book-rules":     "canary rejected",
				"phone-director": "unknown phone preset android",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			require.NotNil(t, result)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.False(t, result.Timestamp.IsZero())
			require.Len(t, result.Checks, len(tt.expectedMsgs))

			for name, msg := range tt.expectedMsgs {
				require.Contains(t, result.Checks, name)
				assert.Equal(t, msg, result.Checks[name].Message)
			}
		})
	}
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	registry := NewHealthRegistry()
	registry.CheckTimeout = 10 * time.Millisecond

	require.NoError(t, registry.Register(funcChecker{
		name: "slow",
		fn: func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
				return nil
			}
		},
	}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), result.Checks["slow"].Message)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeBuilt, Outcome(nil))
	assert.Equal(t, OutcomeRejected, Outcome([]string{"isbn"}))
}

func TestNopRecorder(t *testing.T) {
	var r BuildRecorder = NopRecorder{}

	assert.NotPanics(t, func() {
		r.RecordBuild(context.Background(), "book", []string{"title"})
	})
}
