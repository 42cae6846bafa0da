// Package app contains application services that orchestrate use cases.
// It drives the domain builders and reports outcomes through ports.
//
// What does NOT belong here:
//   - HTTP or CLI specifics (that's adapters and cmd)
//   - Validation rules themselves (that's the domain layer)
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jsamuelsen/builder-service/internal/domain"
	"github.com/jsamuelsen/builder-service/internal/platform/logging"
	"github.com/jsamuelsen/builder-service/internal/platform/telemetry"
	"github.com/jsamuelsen/builder-service/internal/ports"
)

// DefaultBatchConcurrency bounds how many drafts a batch builds at once.
const DefaultBatchConcurrency = 8

// entityBook is the entity label used for logging and metrics.
const entityBook = "book"

// BookDraft holds caller-supplied book fields. A nil field is left unset on
// the builder, which is how callers express a missing value.
type BookDraft struct {
	ISBN        *string
	Title       *string
	Genre       *string
	Author      *string
	Description *string
}

// builder stages every non-nil draft field on a fresh builder.
func (d BookDraft) builder() *domain.BookBuilder {
	b := domain.NewBookBuilder()

	if d.ISBN != nil {
		b.SetISBN(*d.ISBN)
	}

	if d.Title != nil {
		b.SetTitle(*d.Title)
	}

	if d.Genre != nil {
		b.SetGenre(*d.Genre)
	}

	if d.Author != nil {
		b.SetAuthor(*d.Author)
	}

	if d.Description != nil {
		b.SetDescription(*d.Description)
	}

	return b
}

// BookOutcome is the result of building one draft in a batch.
type BookOutcome struct {
	Index int
	Book  *domain.Book
	Err   error
}

// BookService builds books from drafts.
type BookService struct {
	recorder    ports.BuildRecorder
	logger      *slog.Logger
	concurrency int
}

// BookServiceConfig contains the dependencies of the book service.
type BookServiceConfig struct {
	Recorder ports.BuildRecorder
	Logger   *slog.Logger

	// BatchConcurrency bounds parallel builds in BuildBatch.
	// Defaults to DefaultBatchConcurrency when not positive.
	BatchConcurrency int
}

// NewBookService creates a book service. A nil recorder discards outcomes.
func NewBookService(cfg BookServiceConfig) *BookService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}

	concurrency := cfg.BatchConcurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	return &BookService{
		recorder:    recorder,
		logger:      logger.With(slog.String("component", "app.BookService")),
		concurrency: concurrency,
	}
}

// Build stages the draft on a new builder and builds it.
// Validation failures are returned as *domain.ValidationError, wrapped.
func (s *BookService) Build(ctx context.Context, draft BookDraft) (*domain.Book, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "book.build")
	defer span.End()

	logger := logging.FromContextOr(ctx, s.logger)

	book, err := draft.builder().Build()
	fields := violationFields(err)
	s.recorder.RecordBuild(ctx, entityBook, fields)
	span.SetAttributes(attribute.StringSlice("builder.violations", fields))

	if err != nil {
		span.SetStatus(codes.Error, "book rejected")

		logger.InfoContext(ctx, "book rejected",
			slog.Any("violations", violationMessages(err)),
		)

		return nil, fmt.Errorf("building book: %w", err)
	}

	logger.InfoContext(ctx, "book built",
		slog.String("isbn", book.ISBN()),
		slog.String("title", book.Title()),
	)

	return book, nil
}

// Validate runs every book rule against the draft without building.
// An empty result means the draft would build.
func (s *BookService) Validate(ctx context.Context, draft BookDraft) []string {
	violations := draft.builder().Violations()

	logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "book draft validated",
		slog.Int("violations", len(violations)),
	)

	return violations
}

// BuildBatch builds every draft on its own builder, in parallel, and returns
// one outcome per draft in input order. A failing draft does not affect the
// others.
func (s *BookService) BuildBatch(ctx context.Context, drafts []BookDraft) []BookOutcome {
	fns := make([]func(context.Context) (*domain.Book, error), len(drafts))
	for i, d := range drafts {
		fns[i] = func(ctx context.Context) (*domain.Book, error) {
			return s.Build(ctx, d)
		}
	}

	results := ParallelPartialLimit(ctx, s.concurrency, fns...)

	outcomes := make([]BookOutcome, len(results))

	var rejected int

	for i, r := range results {
		outcomes[i] = BookOutcome{Index: i, Book: r.Value, Err: r.Err}
		if r.Err != nil {
			rejected++
		}
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "book batch built",
		slog.Int("total", len(drafts)),
		slog.Int("rejected", rejected),
	)

	return outcomes
}

// canaryTitle is built by Check to prove the rule set accepts a valid book.
const canaryTitle = "Readiness"

// Name implements ports.HealthChecker.
func (s *BookService) Name() string {
	return "book-rules"
}

// Check implements ports.HealthChecker. It builds a known-good book and
// confirms a known-bad one is rejected.
func (s *BookService) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := domain.NewBookBuilder().SetISBN("0").SetTitle(canaryTitle).Build(); err != nil {
		return fmt.Errorf("valid canary rejected: %w", err)
	}

	if _, err := domain.NewBookBuilder().Build(); !domain.IsValidation(err) {
		return errors.New("empty canary accepted")
	}

	return nil
}

// violationFields returns the field of every violation carried by err.
func violationFields(err error) []string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}

	return fields
}

func violationMessages(err error) []string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	return verr.Messages()
}
