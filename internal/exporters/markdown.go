package exporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/wordbook/internal/entities"
)

const uncategorisedHeading = "Uncategorised"

// GenerateDeckMarkdown renders words grouped by category, in category order,
// with uncategorised words last. Categories without words are left out.
func GenerateDeckMarkdown(owner string, categories []entities.Category, words []entities.Word, now time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: vocabulary\n")
	fmt.Fprintf(&builder, "created_at: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&builder, "owner: \"%s\"\n", strings.ReplaceAll(owner, "\"", "\\\""))
	fmt.Fprintf(&builder, "words: %d\n", len(words))
	fmt.Fprintf(&builder, "tags: vocabulary, japanese, spanish\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# Vocabulary\n\n")

	byCategory := make(map[uint][]entities.Word)
	var uncategorised []entities.Word
	known := make(map[uint]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	for _, w := range words {
		if w.CategoryID == nil || !known[*w.CategoryID] {
			uncategorised = append(uncategorised, w)
			continue
		}
		byCategory[*w.CategoryID] = append(byCategory[*w.CategoryID], w)
	}

	for _, c := range categories {
		group := byCategory[c.ID]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&builder, "## %s\n\n", c.Name)
		if c.Description != nil && *c.Description != "" {
			fmt.Fprintf(&builder, "%s\n\n", *c.Description)
		}
		writeWordTable(&builder, group)
	}

	if len(uncategorised) > 0 {
		fmt.Fprintf(&builder, "## %s\n\n", uncategorisedHeading)
		writeWordTable(&builder, uncategorised)
	}

	if len(words) == 0 {
		fmt.Fprintf(&builder, "_No words yet._\n")
	}

	return builder.String()
}

func writeWordTable(builder *strings.Builder, words []entities.Word) {
	fmt.Fprintf(builder, "| Japanese | Romaji | Spanish |\n")
	fmt.Fprintf(builder, "|---|---|---|\n")
	for _, w := range words {
		fmt.Fprintf(builder, "| %s | %s | %s |\n", tableCell(w.Japanese), tableCell(w.Romaji), tableCell(w.Spanish))
	}
	fmt.Fprintf(builder, "\n")
}

func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
