// Package exporters renders vocabulary decks to markdown files.
package exporters

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/storage"
	"github.com/mrlokans/wordbook/internal/utils"
)

// DeckFileName is the file written inside each user's export directory.
const DeckFileName = "wordbook.md"

// ExportResult summarises one user's export.
type ExportResult struct {
	Path               string `json:"path"`
	WordsExported      int    `json:"words_exported"`
	CategoriesExported int    `json:"categories_exported"`
}

// DeckExporter writes a markdown deck per user under a base directory.
type DeckExporter struct {
	store   storage.Store
	baseDir string
	now     func() time.Time
	logger  *slog.Logger
}

func NewDeckExporter(store storage.Store, baseDir string) *DeckExporter {
	return &DeckExporter{
		store:   store,
		baseDir: baseDir,
		now:     time.Now,
		logger:  slog.Default().With("component", "exporter"),
	}
}

// Render builds the markdown for one user without touching the filesystem.
// A non-nil categoryID limits the output to that category's words.
func (e *DeckExporter) Render(ctx context.Context, userID uint, categoryID *uint) (string, ExportResult, error) {
	_, content, result, err := e.render(ctx, userID, categoryID)
	return content, result, err
}

func (e *DeckExporter) render(ctx context.Context, userID uint, categoryID *uint) (*entities.User, string, ExportResult, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", ExportResult{}, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if user == nil {
		return nil, "", ExportResult{}, storage.ErrNotFound
	}

	categories, err := e.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, "", ExportResult{}, fmt.Errorf("failed to list categories: %w", err)
	}
	if categoryID != nil {
		filtered := categories[:0]
		for _, c := range categories {
			if c.ID == *categoryID {
				filtered = append(filtered, c)
			}
		}
		categories = filtered
	}

	words, err := e.store.ListWords(ctx, userID, categoryID)
	if err != nil {
		return nil, "", ExportResult{}, fmt.Errorf("failed to list words: %w", err)
	}

	result := ExportResult{
		WordsExported:      len(words),
		CategoriesExported: len(categories),
	}
	return user, GenerateDeckMarkdown(user.Username, categories, words, e.now()), result, nil
}

// ExportUser writes <baseDir>/<username>/wordbook.md for the user.
func (e *DeckExporter) ExportUser(ctx context.Context, userID uint) (ExportResult, error) {
	user, content, result, err := e.render(ctx, userID, nil)
	if err != nil {
		return ExportResult{}, err
	}

	userDir := filepath.Join(e.baseDir, utils.SanitizeFilename(user.Username))
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	result.Path = filepath.Join(userDir, DeckFileName)
	if err := os.WriteFile(result.Path, []byte(content), 0644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write export: %w", err)
	}

	e.logger.Info("deck exported", "user_id", userID, "path", result.Path, "words", result.WordsExported)
	return result, nil
}
