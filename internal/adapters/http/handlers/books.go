package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/builder-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/builder-service/internal/app"
	"github.com/jsamuelsen/builder-service/internal/domain"
)

// BookBuilder is the application behaviour the book handler needs.
type BookBuilder interface {
	Build(ctx context.Context, draft app.BookDraft) (*domain.Book, error)
	Validate(ctx context.Context, draft app.BookDraft) []string
	BuildBatch(ctx context.Context, drafts []app.BookDraft) []app.BookOutcome
}

// BookHandler handles book build endpoints.
type BookHandler struct {
	service    BookBuilder
	batchLimit int
}

// NewBookHandler creates a book handler. batchLimit caps the number of
// drafts a batch request may carry.
func NewBookHandler(service BookBuilder, batchLimit int) *BookHandler {
	return &BookHandler{
		service:    service,
		batchLimit: batchLimit,
	}
}

// toDraft converts a request body into an application draft.
func toDraft(r dto.BookRequest) app.BookDraft {
	return app.BookDraft{
		ISBN:        r.ISBN,
		Title:       r.Title,
		Genre:       r.Genre,
		Author:      r.Author,
		Description: r.Description,
	}
}

// optional returns nil for an unset book field.
func optional(set bool, v string) *string {
	if !set {
		return nil
	}

	return &v
}

// toBookResponse converts a domain Book to an HTTP response.
func toBookResponse(b *domain.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ISBN:        b.ISBN(),
		Title:       b.Title(),
		Genre:       optional(b.HasGenre(), b.Genre()),
		Author:      optional(b.HasAuthor(), b.Author()),
		Description: optional(b.HasDescription(), b.Description()),
	}
}

// CreateBook handles POST /api/v1/books.
// Returns 201 with the built book, or 400 listing every violated rule.
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	book, err := h.service.Build(c.Request.Context(), toDraft(req))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(book))
}

// ValidateBook handles POST /api/v1/books/validate.
// Always 200 for a well-formed body; the response says whether it would build.
func (h *BookHandler) ValidateBook(c *gin.Context) {
	var req dto.BookRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	violations := h.service.Validate(c.Request.Context(), toDraft(req))
	if violations == nil {
		violations = []string{}
	}

	c.JSON(http.StatusOK, dto.ValidateBookResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

// BuildBatch handles POST /api/v1/books/batch.
// Each draft is built independently; per-item failures do not fail the request.
func (h *BookHandler) BuildBatch(c *gin.Context) {
	var req dto.BatchBookRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	if h.batchLimit > 0 && len(req.Drafts) > h.batchLimit {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			map[string]string{"drafts": fmt.Sprintf("must be at most %d items", h.batchLimit)},
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	drafts := make([]app.BookDraft, len(req.Drafts))
	for i, r := range req.Drafts {
		drafts[i] = toDraft(r)
	}

	outcomes := h.service.BuildBatch(c.Request.Context(), drafts)

	resp := dto.BatchBookResponse{Results: make([]dto.BatchBookItem, len(outcomes))}

	for i, o := range outcomes {
		item := dto.BatchBookItem{Index: o.Index}

		if o.Err != nil {
			if ctxErr := c.Request.Context().Err(); ctxErr != nil && errors.Is(o.Err, ctxErr) {
				dto.RespondWithErrorCode(c, dto.ErrorCodeTimeout, "batch did not finish before the request deadline")
				return
			}

			_, errResp := dto.MapDomainError(o.Err)
			item.Error = &errResp.Error
			resp.Rejected++
		} else {
			item.Book = toBookResponse(o.Book)
			resp.Built++
		}

		resp.Results[i] = item
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterBookRoutes registers book routes on the given router group. Extra
// handlers, such as a scope check, run before the batch endpoint only.
func (h *BookHandler) RegisterBookRoutes(rg *gin.RouterGroup, batchGuards ...gin.HandlerFunc) {
	books := rg.Group("/books")
	books.POST("", h.CreateBook)
	books.POST("/validate", h.ValidateBook)
	books.POST("/batch", append(batchGuards, h.BuildBatch)...)
}
