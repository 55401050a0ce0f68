// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/semdex/internal/core/domain"
)

// HitList displays query hits in a navigable list.
type HitList struct {
	hits          []domain.Hit
	selected      int
	previewLength int
	styles        *styles.Styles
	width         int
	height        int
}

// NewHitList creates a hit list that previews previewLength runes of
// each document. A non-positive length uses domain.DefaultPreviewLength.
func NewHitList(s *styles.Styles, previewLength int) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if previewLength <= 0 {
		previewLength = domain.DefaultPreviewLength
	}

	return &HitList{
		previewLength: previewLength,
		styles:        s,
		width:         80,
		height:        10,
	}
}

// View renders the hit list.
func (l *HitList) View() string {
	if len(l.hits) == 0 {
		return l.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(l.hits)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Hits (%d)", len(l.hits))), "")

	// Each hit takes a title line and a preview line plus spacing.
	visible := (l.height - 4) / 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.hits) {
		end = len(l.hits)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderHit(i, &l.hits[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *HitList) renderHit(index int, hit *domain.Hit) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := hit.Document.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitle := l.width - 24
	if maxTitle < 10 {
		maxTitle = 10
	}
	if len([]rune(title)) > maxTitle {
		title = domain.Preview(title, maxTitle-3) + "..."
	}

	rank := fmt.Sprintf("[%d]", hit.Rank)
	dist := fmt.Sprintf("(dist: %.3f)", hit.Distance)

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(indicator + rank + " " + title + " " + dist)
	} else {
		titleLine = indicator + l.styles.Rank.Render(rank) + " " +
			l.styles.Normal.Render(title) + " " + l.styles.Distance(hit.Distance).Render(dist)
	}

	preview := domain.Preview(hit.Document.Content, l.previewLength)
	if preview != hit.Document.Content {
		preview += "..."
	}
	previewLine := l.styles.Muted.Render("    " + preview)

	return titleLine + "\n" + previewLine
}

// SetHits replaces the hits and resets the selection.
func (l *HitList) SetHits(hits []domain.Hit) {
	l.hits = hits
	l.selected = 0
}

// Hits returns the current hits.
func (l *HitList) Hits() []domain.Hit {
	return l.hits
}

// Selected returns the index of the selected hit.
func (l *HitList) Selected() int {
	return l.selected
}

// SelectedHit returns the selected hit, or nil if the list is empty.
func (l *HitList) SelectedHit() *domain.Hit {
	if l.selected < 0 || l.selected >= len(l.hits) {
		return nil
	}
	return &l.hits[l.selected]
}

// MoveUp moves selection up.
func (l *HitList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *HitList) MoveDown() {
	if l.selected < len(l.hits)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *HitList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of hits.
func (l *HitList) Count() int {
	return len(l.hits)
}
