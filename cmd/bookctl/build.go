package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/builder-service/internal/app"
	"github.com/jsamuelsen/builder-service/internal/domain"
)

// bookJSON is the printed form of a built book. Unset optional fields are
// omitted.
type bookJSON struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Genre       *string `json:"genre,omitempty"`
	Author      *string `json:"author,omitempty"`
	Description *string `json:"description,omitempty"`
}

func toBookJSON(b *domain.Book) bookJSON {
	out := bookJSON{ISBN: b.ISBN(), Title: b.Title()}

	if b.HasGenre() {
		out.Genre = stringPtr(b.Genre())
	}

	if b.HasAuthor() {
		out.Author = stringPtr(b.Author())
	}

	if b.HasDescription() {
		out.Description = stringPtr(b.Description())
	}

	return out
}

func stringPtr(s string) *string { return &s }

var bookFlags = []string{"isbn", "title", "genre", "author", "description"}

func newBuildCmd(newLogger func(*cobra.Command) *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a book from flags",
		Long: `Build a book from flags. Flags that are not passed stay unset, ` +
			`so --title "" is an empty title while omitting --title is a missing one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, newLogger(cmd))
		},
	}

	for _, name := range bookFlags {
		cmd.Flags().String(name, "", "book "+name)
	}

	return cmd
}

func runBuild(cmd *cobra.Command, logger *slog.Logger) error {
	var draft app.BookDraft

	targets := map[string]**string{
		"isbn":        &draft.ISBN,
		"title":       &draft.Title,
		"genre":       &draft.Genre,
		"author":      &draft.Author,
		"description": &draft.Description,
	}

	for name, target := range targets {
		if !cmd.Flags().Changed(name) {
			continue
		}

		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return fmt.Errorf("reading --%s: %w", name, err)
		}

		*target = &v
	}

	svc := app.NewBookService(app.BookServiceConfig{Logger: logger})

	book, err := svc.Build(cmd.Context(), draft)
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), strings.Join(verr.Messages(), "\n"))

		return errRejected
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if err := enc.Encode(toBookJSON(book)); err != nil {
		return fmt.Errorf("writing book: %w", err)
	}

	return nil
}
