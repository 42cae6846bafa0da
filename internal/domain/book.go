package domain

import (
	"unicode/utf8"
)

// Book validation limits.
const (
	// MinTitleLength is the minimum number of characters in a title.
	MinTitleLength = 2

	// MaxDescriptionLength is the maximum number of characters in a description.
	MaxDescriptionLength = 500
)

// Book rule violation messages.
const (
	MsgISBNRequired       = "identifier cannot be null"
	MsgTitleRequired      = "title cannot be null"
	MsgTitleTooShort      = "title length cannot be less than two"
	MsgDescriptionTooLong = "description cannot exceed 500 characters"
)

// Book is an immutable catalog record. It can only be obtained from
// BookBuilder.Build, which guarantees every BookRules check has passed.
type Book struct {
	isbn        string
	title       string
	genre       *string
	author      *string
	description *string
}

// ISBN returns the book identifier.
func (b *Book) ISBN() string { return b.isbn }

// Title returns the book title.
func (b *Book) Title() string { return b.title }

// Genre returns the genre, or "" when none was set.
func (b *Book) Genre() string { return deref(b.genre) }

// Author returns the author, or "" when none was set.
func (b *Book) Author() string { return deref(b.author) }

// Description returns the description, or "" when none was set.
func (b *Book) Description() string { return deref(b.description) }

// HasGenre reports whether a genre was set.
func (b *Book) HasGenre() bool { return b.genre != nil }

// HasAuthor reports whether an author was set.
func (b *Book) HasAuthor() bool { return b.author != nil }

// HasDescription reports whether a description was set.
func (b *Book) HasDescription() bool { return b.description != nil }

// BookBuilder stages Book fields. Setters never validate; all checks run in
// Build. A builder is not safe for concurrent use.
//
// Example:
//
//	book, err := domain.NewBookBuilder().
//	    SetISBN("978-0").
//	    SetTitle("Go").
//	    Build()
type BookBuilder struct {
	isbn        *string
	title       *string
	genre       *string
	author      *string
	description *string
}

// NewBookBuilder returns an empty builder with every field unset.
func NewBookBuilder() *BookBuilder {
	return &BookBuilder{}
}

// SetISBN stages the identifier.
func (b *BookBuilder) SetISBN(isbn string) *BookBuilder {
	b.isbn = &isbn
	return b
}

// SetTitle stages the title.
func (b *BookBuilder) SetTitle(title string) *BookBuilder {
	b.title = &title
	return b
}

// SetGenre stages the genre.
func (b *BookBuilder) SetGenre(genre string) *BookBuilder {
	b.genre = &genre
	return b
}

// SetAuthor stages the author.
func (b *BookBuilder) SetAuthor(author string) *BookBuilder {
	b.author = &author
	return b
}

// SetDescription stages the description.
func (b *BookBuilder) SetDescription(description string) *BookBuilder {
	b.description = &description
	return b
}

// ClearISBN unsets the identifier.
func (b *BookBuilder) ClearISBN() *BookBuilder {
	b.isbn = nil
	return b
}

// ClearTitle unsets the title.
func (b *BookBuilder) ClearTitle() *BookBuilder {
	b.title = nil
	return b
}

// ClearGenre unsets the genre.
func (b *BookBuilder) ClearGenre() *BookBuilder {
	b.genre = nil
	return b
}

// ClearAuthor unsets the author.
func (b *BookBuilder) ClearAuthor() *BookBuilder {
	b.author = nil
	return b
}

// ClearDescription unsets the description.
func (b *BookBuilder) ClearDescription() *BookBuilder {
	b.description = nil
	return b
}

// BookRule is a named precondition checked against staged fields.
// Check returns the violation messages for the rule, or nil when it holds.
type BookRule struct {
	Field string
	Check func(b *BookBuilder) []string
}

// BookRules lists every book rule in evaluation order.
var BookRules = []BookRule{
	{Field: "isbn", Check: checkISBN},
	{Field: "title", Check: checkTitle},
	{Field: "description", Check: checkDescription},
}

func checkISBN(b *BookBuilder) []string {
	if b.isbn == nil {
		return []string{MsgISBNRequired}
	}

	return nil
}

func checkTitle(b *BookBuilder) []string {
	if b.title == nil {
		return []string{MsgTitleRequired}
	}

	if utf8.RuneCountInString(*b.title) < MinTitleLength {
		return []string{MsgTitleTooShort}
	}

	return nil
}

func checkDescription(b *BookBuilder) []string {
	if b.description != nil && utf8.RuneCountInString(*b.description) > MaxDescriptionLength {
		return []string{MsgDescriptionTooLong}
	}

	return nil
}

// validate runs every rule without stopping at the first failure.
func (b *BookBuilder) validate() []Violation {
	var violations []Violation

	for _, rule := range BookRules {
		for _, msg := range rule.Check(b) {
			violations = append(violations, Violation{Field: rule.Field, Message: msg})
		}
	}

	return violations
}

// Violations returns the message of every failed rule without building.
func (b *BookBuilder) Violations() []string {
	violations := b.validate()

	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}

	return msgs
}

// Build validates the staged fields and returns a new Book.
// On failure it returns a *ValidationError listing every violated rule.
func (b *BookBuilder) Build() (*Book, error) {
	if err := NewEntityValidationError("book", b.validate()); err != nil {
		return nil, err
	}

	return &Book{
		isbn:        *b.isbn,
		title:       *b.title,
		genre:       clone(b.genre),
		author:      clone(b.author),
		description: clone(b.description),
	}, nil
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
