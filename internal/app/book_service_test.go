package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/builder-service/internal/domain"
	"github.com/jsamuelsen/builder-service/internal/mocks"
	"github.com/jsamuelsen/builder-service/internal/platform/logging"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(s string) *string {
	return &s
}

func TestNewBookService_Defaults(t *testing.T) {
	svc := NewBookService(BookServiceConfig{})

	require.NotNil(t, svc)
	assert.NotNil(t, svc.logger)
	assert.NotNil(t, svc.recorder)
	assert.Equal(t, DefaultBatchConcurrency, svc.concurrency)
}

func TestBookService_Build(t *testing.T) {
	tests := []struct {
		name           string
		draft          BookDraft
		expectedFields []string
		expectedErr    string
		check          func(t *testing.T, b *domain.Book)
	}{
		{
			name:  "valid draft",
			draft: BookDraft{ISBN: ptr("978-0"), Title: ptr("Go")},
			check: func(t *testing.T, b *domain.Book) {
				assert.Equal(t, "978-0", b.ISBN())
				assert.Equal(t, "Go", b.Title())
				assert.False(t, b.HasDescription())
			},
		},
		{
			name: "optional fields are staged",
			draft: BookDraft{
				ISBN:        ptr("1"),
				Title:       ptr("Go"),
				Genre:       ptr("Tech"),
				Author:      ptr("Pike"),
				Description: ptr("desc"),
			},
			check: func(t *testing.T, b *domain.Book) {
				assert.Equal(t, "Tech", b.Genre())
				assert.Equal(t, "Pike", b.Author())
				assert.Equal(t, "desc", b.Description())
			},
		},
		{
			name:           "missing identifier and short title",
			draft:          BookDraft{Title: ptr("A")},
			expectedFields: []string{"isbn", "title"},
			expectedErr:    "identifier cannot be null\ntitle length cannot be less than two",
		},
		{
			name:           "empty draft",
			draft:          BookDraft{},
			expectedFields: []string{"isbn", "title"},
			expectedErr:    "identifier cannot be null\ntitle cannot be null",
		},
		{
			name:           "long description",
			draft:          BookDraft{ISBN: ptr("1"), Title: ptr("Go"), Description: ptr(strings.Repeat("d", 501))},
			expectedFields: []string{"description"},
			expectedErr:    "description cannot exceed 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := mocks.NewMockBuildRecorder(t)
			recorder.EXPECT().RecordBuild(mock.Anything, "book", tt.expectedFields).Return().Once()

			svc := NewBookService(BookServiceConfig{Recorder: recorder, Logger: discardLogger()})

			book, err := svc.Build(context.Background(), tt.draft)

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Nil(t, book)
				assert.True(t, domain.IsValidation(err))

				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.expectedErr, verr.Error())

				return
			}

			require.NoError(t, err)
			tt.check(t, book)
		})
	}
}

func TestBookService_Build_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctxLogger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := logging.WithContext(context.Background(), ctxLogger)

	svc := NewBookService(BookServiceConfig{Logger: discardLogger()})

	_, err := svc.Build(ctx, BookDraft{Title: ptr("A")})
	require.Error(t, err)

	output := buf.String()
	assert.Contains(t, output, "book rejected")
	assert.Contains(t, output, "identifier cannot be null")
}

func TestBookService_Validate(t *testing.T) {
	svc := NewBookService(BookServiceConfig{Logger: discardLogger()})

	assert.Empty(t, svc.Validate(context.Background(), BookDraft{ISBN: ptr("1"), Title: ptr("Go")}))
	assert.Equal(t,
		[]string{domain.MsgISBNRequired, domain.MsgTitleTooShort},
		svc.Validate(context.Background(), BookDraft{Title: ptr("")}),
	)
}

type countingRecorder struct {
	built    atomic.Int64
	rejected atomic.Int64
}

func (c *countingRecorder) RecordBuild(_ context.Context, _ string, violations []string) {
	if len(violations) == 0 {
		c.built.Add(1)
		return
	}

	c.rejected.Add(1)
}

func TestBookService_BuildBatch(t *testing.T) {
	recorder := &countingRecorder{}
	svc := NewBookService(BookServiceConfig{
		Recorder:         recorder,
		Logger:           discardLogger(),
		BatchConcurrency: 2,
	})

	drafts := []BookDraft{
		{ISBN: ptr("1"), Title: ptr("Go")},
		{Title: ptr("A")},
		{ISBN: ptr("3"), Title: ptr("Rust")},
		{},
		{ISBN: ptr("5"), Title: ptr("Zig"), Description: ptr("short")},
	}

	outcomes := svc.BuildBatch(context.Background(), drafts)

	require.Len(t, outcomes, len(drafts))

	for i, o := range outcomes {
		assert.Equal(t, i, o.Index)
	}

	require.NoError(t, outcomes[0].Err)
	assert.Equal(t, "Go", outcomes[0].Book.Title())

	require.Error(t, outcomes[1].Err)
	assert.Contains(t, outcomes[1].Err.Error(), domain.MsgTitleTooShort)

	require.NoError(t, outcomes[2].Err)
	assert.Equal(t, "Rust", outcomes[2].Book.Title())

	require.Error(t, outcomes[3].Err)
	assert.Nil(t, outcomes[3].Book)

	require.NoError(t, outcomes[4].Err)
	assert.Equal(t, "short", outcomes[4].Book.Description())

	assert.Equal(t, int64(3), recorder.built.Load())
	assert.Equal(t, int64(2), recorder.rejected.Load())
}

func TestBookService_BuildBatch_Empty(t *testing.T) {
	svc := NewBookService(BookServiceConfig{Logger: discardLogger()})

	assert.Empty(t, svc.BuildBatch(context.Background(), nil))
}

func TestBookService_BuildBatch_CancelledContext(t *testing.T) {
	svc := NewBookService(BookServiceConfig{Logger: discardLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := svc.BuildBatch(ctx, []BookDraft{
		{ISBN: ptr("1"), Title: ptr("Go")},
		{ISBN: ptr("2"), Title: ptr("Go")},
	})

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		require.ErrorIs(t, o.Err, context.Canceled)
		assert.Nil(t, o.Book)
	}
}

func TestBookService_HealthCheck(t *testing.T) {
	svc := NewBookService(BookServiceConfig{Logger: discardLogger()})

	assert.Equal(t, "book-rules", svc.Name())
	require.NoError(t, svc.Check(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, svc.Check(ctx), context.Canceled)
}

func TestParallelPartialLimit_PreservesOrder(t *testing.T) {
	var running, peak atomic.Int64

	fns := make([]func(context.Context) (int, error), 20)
	for i := range fns {
		fns[i] = func(context.Context) (int, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			running.Add(-1)

			return i * i, nil
		}
	}

	results := ParallelPartialLimit(context.Background(), 3, fns...)

	require.Len(t, results, 20)
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, i*i, r.Value)
	}
	assert.LessOrEqual(t, peak.Load(), int64(3))
}
