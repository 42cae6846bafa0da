package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookBuilder_Build_Valid(t *testing.T) {
	tests := []struct {
		name  string
		build func() *BookBuilder
		check func(t *testing.T, b *Book)
	}{
		{
			name: "required fields only",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("978-0").SetTitle("Go")
			},
			check: func(t *testing.T, b *Book) {
				assert.Equal(t, "978-0", b.ISBN())
				assert.Equal(t, "Go", b.Title())
				assert.False(t, b.HasDescription())
				assert.False(t, b.HasGenre())
				assert.False(t, b.HasAuthor())
				assert.Empty(t, b.Description())
			},
		},
		{
			name: "all fields",
			build: func() *BookBuilder {
				return NewBookBuilder().
					SetISBN("978-0134190440").
					SetTitle("The Go Programming Language").
					SetGenre("Programming").
					SetAuthor("Donovan").
					SetDescription("A book about Go.")
			},
			check: func(t *testing.T, b *Book) {
				assert.Equal(t, "978-0134190440", b.ISBN())
				assert.Equal(t, "The Go Programming Language", b.Title())
				assert.Equal(t, "Programming", b.Genre())
				assert.Equal(t, "Donovan", b.Author())
				assert.Equal(t, "A book about Go.", b.Description())
				assert.True(t, b.HasDescription())
			},
		},
		{
			name: "empty identifier is present",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("").SetTitle("Go")
			},
			check: func(t *testing.T, b *Book) {
				assert.Empty(t, b.ISBN())
			},
		},
		{
			name: "description at limit",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1").SetTitle("Go").
					SetDescription(strings.Repeat("a", MaxDescriptionLength))
			},
			check: func(t *testing.T, b *Book) {
				assert.Len(t, b.Description(), MaxDescriptionLength)
			},
		},
		{
			name: "empty description is present and valid",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1").SetTitle("Go").SetDescription("")
			},
			check: func(t *testing.T, b *Book) {
				assert.True(t, b.HasDescription())
				assert.Empty(t, b.Description())
			},
		},
		{
			name: "multibyte title counts characters",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1").SetTitle("語録")
			},
			check: func(t *testing.T, b *Book) {
				assert.Equal(t, "語録", b.Title())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := tt.build().Build()
			require.NoError(t, err)
			require.NotNil(t, book)
			tt.check(t, book)
		})
	}
}

func TestBookBuilder_Build_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *BookBuilder
		expected []string
	}{
		{
			name:     "empty builder",
			build:    NewBookBuilder,
			expected: []string{MsgISBNRequired, MsgTitleRequired},
		},
		{
			name: "missing identifier",
			build: func() *BookBuilder {
				return NewBookBuilder().SetTitle("Go")
			},
			expected: []string{MsgISBNRequired},
		},
		{
			name: "missing title",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1")
			},
			expected: []string{MsgTitleRequired},
		},
		{
			name: "empty title",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1").SetTitle("")
			},
			expected: []string{MsgTitleTooShort},
		},
		{
			name: "one character title",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1").SetTitle("A")
			},
			expected: []string{MsgTitleTooShort},
		},
		{
			name: "single multibyte character title",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1").SetTitle("語")
			},
			expected: []string{MsgTitleTooShort},
		},
		{
			name: "description over limit",
			build: func() *BookBuilder {
				return NewBookBuilder().SetISBN("1").SetTitle("Go").
					SetDescription(strings.Repeat("a", MaxDescriptionLength+1))
			},
			expected: []string{MsgDescriptionTooLong},
		},
		{
			name: "missing identifier and short title",
			build: func() *BookBuilder {
				return NewBookBuilder().SetTitle("A")
			},
			expected: []string{MsgISBNRequired, MsgTitleTooShort},
		},
		{
			name: "every rule violated",
			build: func() *BookBuilder {
				return NewBookBuilder().SetTitle("A").
					SetDescription(strings.Repeat("x", 501))
			},
			expected: []string{MsgISBNRequired, MsgTitleTooShort, MsgDescriptionTooLong},
		},
		{
			name: "missing title and long description",
			build: func() *BookBuilder {
				return NewBookBuilder().SetDescription(strings.Repeat("x", 600))
			},
			expected: []string{MsgISBNRequired, MsgTitleRequired, MsgDescriptionTooLong},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := tt.build().Build()
			require.Error(t, err)
			assert.Nil(t, book)

			require.ErrorIs(t, err, ErrValidation)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, "book", validation.Entity)
			assert.Equal(t, tt.expected, validation.Messages())
			assert.Equal(t, strings.Join(tt.expected, "\n"), err.Error())
		})
	}
}

func TestBookBuilder_Build_Examples(t *testing.T) {
	book, err := NewBookBuilder().SetISBN("978-0").SetTitle("Go").Build()
	require.NoError(t, err)
	assert.Equal(t, "Go", book.Title())

	_, err = NewBookBuilder().SetTitle("A").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifier cannot be null")
	assert.Contains(t, err.Error(), "title length cannot be less than two")
}

func TestBookBuilder_SettersReturnSameBuilder(t *testing.T) {
	b := NewBookBuilder()

	assert.Same(t, b, b.SetISBN("1"))
	assert.Same(t, b, b.SetTitle("Go"))
	assert.Same(t, b, b.SetGenre("g"))
	assert.Same(t, b, b.SetAuthor("a"))
	assert.Same(t, b, b.SetDescription("d"))
	assert.Same(t, b, b.ClearGenre())
	assert.Same(t, b, b.ClearAuthor())
	assert.Same(t, b, b.ClearDescription())
	assert.Same(t, b, b.ClearTitle())
	assert.Same(t, b, b.ClearISBN())
}

func TestBookBuilder_LastSetterWins(t *testing.T) {
	book, err := NewBookBuilder().
		SetISBN("first").
		SetISBN("second").
		SetTitle("A").
		SetTitle("Go").
		SetDescription(strings.Repeat("a", 501)).
		SetDescription("short").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "second", book.ISBN())
	assert.Equal(t, "Go", book.Title())
	assert.Equal(t, "short", book.Description())
}

func TestBookBuilder_ClearRestoresNull(t *testing.T) {
	_, err := NewBookBuilder().SetISBN("1").SetTitle("Go").ClearISBN().Build()
	require.Error(t, err)
	assert.Equal(t, MsgISBNRequired, err.Error())
}

func TestBookBuilder_BuildCopiesStagedValues(t *testing.T) {
	b := NewBookBuilder().SetISBN("1").SetTitle("Go").SetAuthor("Pike")

	first, err := b.Build()
	require.NoError(t, err)

	b.SetTitle("Changed").SetAuthor("Thompson").ClearISBN()

	assert.Equal(t, "1", first.ISBN())
	assert.Equal(t, "Go", first.Title())
	assert.Equal(t, "Pike", first.Author())
}

func TestBookBuilder_BuildIsRepeatable(t *testing.T) {
	valid := NewBookBuilder().SetISBN("1").SetTitle("Go")

	a, err := valid.Build()
	require.NoError(t, err)
	b, err := valid.Build()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)

	invalid := NewBookBuilder().SetTitle("A")
	_, errA := invalid.Build()
	_, errB := invalid.Build()
	assert.Equal(t, errA.Error(), errB.Error())
}

func TestBookBuilder_FixAndRebuild(t *testing.T) {
	b := NewBookBuilder().SetTitle("A")

	_, err := b.Build()
	require.Error(t, err)

	book, err := b.SetISBN("1").SetTitle("Go").Build()
	require.NoError(t, err)
	assert.Equal(t, "Go", book.Title())
}

func TestBookBuilder_Violations(t *testing.T) {
	assert.Empty(t, NewBookBuilder().SetISBN("1").SetTitle("Go").Violations())
	assert.Equal(t,
		[]string{MsgISBNRequired, MsgTitleRequired},
		NewBookBuilder().Violations(),
	)
}

func TestBookRules_DeclarationOrder(t *testing.T) {
	fields := make([]string, 0, len(BookRules))
	for _, r := range BookRules {
		fields = append(fields, r.Field)
	}

	assert.Equal(t, []string{"isbn", "title", "description"}, fields)
}

func TestBookBuilder_LengthsCountRunes(t *testing.T) {
	// two runes, three bytes
	book, err := NewBookBuilder().SetISBN("1").SetTitle("Éa").Build()
	require.NoError(t, err)
	assert.Equal(t, "Éa", book.Title())

	// 500 runes, 1000 bytes
	_, err = NewBookBuilder().SetISBN("1").SetTitle("Go").SetDescription(strings.Repeat("é", MaxDescriptionLength)).Build()
	require.NoError(t, err)

	_, err = NewBookBuilder().SetISBN("1").SetTitle("日").Build()
	require.Error(t, err)
	assert.Equal(t, MsgTitleTooShort, err.Error())
}

func TestBookBuilder_LengthsCountCodePoints(t *testing.T) {
	// one code point outside the BMP is one character, not two
	_, err := NewBookBuilder().SetISBN("1").SetTitle("😀").Build()
	require.Error(t, err)
	assert.Equal(t, MsgTitleTooShort, err.Error())

	book, err := NewBookBuilder().SetISBN("1").SetTitle("😀😀").Build()
	require.NoError(t, err)
	assert.Equal(t, "😀😀", book.Title())
}
