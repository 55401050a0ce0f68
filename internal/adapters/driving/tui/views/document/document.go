// Package document provides the single-document reader view for the TUI.
package document

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/semdex/internal/core/domain"
)

// View shows a document's metadata and scrollable content.
type View struct {
	styles *styles.Styles

	document     *domain.Document
	back         messages.ViewType
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new document view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		back:   messages.ViewMenu,
		width:  80,
		height: 24,
	}
}

// SetDocument shows doc. Esc returns to back.
func (v *View) SetDocument(doc domain.Document, back messages.ViewType) {
	v.document = &doc
	v.back = back
	v.scrollOffset = 0
	v.wrapContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}
	return v, nil
}

// wrapContent hard-wraps content to the view width on rune boundaries.
func (v *View) wrapContent() {
	v.lines = nil
	if v.document == nil || v.document.Content == "" {
		return
	}

	width := v.width - 4
	if width < 20 {
		width = 20
	}

	for _, line := range strings.Split(v.document.Content, "\n") {
		runes := []rune(line)
		for len(runes) > width {
			v.lines = append(v.lines, string(runes[:width]))
			runes = runes[width:]
		}
		v.lines = append(v.lines, string(runes))
	}
}

// visibleLines reserves room for the header block and help.
func (v *View) visibleLines() int {
	return max(v.height-9, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	if v.document == nil {
		b.WriteString(v.styles.Muted.Render("No document selected."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	doc := v.document
	b.WriteString(v.styles.Title.Render(doc.Title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("#%d  %s", doc.ID, doc.Category)))
	b.WriteString("\n")
	if doc.URL != "" {
		b.WriteString(v.styles.Subtitle.Render(doc.URL))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
	} else {
		visible := v.visibleLines()
		end := min(v.scrollOffset+visible, len(v.lines))
		for _, line := range v.lines[v.scrollOffset:end] {
			b.WriteString(v.styles.Normal.Render(line))
			b.WriteString("\n")
		}
		if len(v.lines) > visible {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d",
				v.scrollOffset+1, end, len(v.lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions and rewraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Document returns the shown document, or nil.
func (v *View) Document() *domain.Document {
	return v.document
}

// Back returns the view esc returns to.
func (v *View) Back() messages.ViewType {
	return v.back
}

// Lines returns the wrapped content lines.
func (v *View) Lines() []string {
	return v.lines
}
