// Package menu is the TUI start screen.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/semdex/internal/core/domain"
)

// Corpus reports the built documents. Without one the menu offers no
// Documents entry and shows no corpus size.
type Corpus interface {
	Documents() []domain.Document
}

// Item is one menu entry. Quit entries end the program instead of
// changing view.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool
}

// View is the start screen.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	corpus   Corpus
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the menu. corpus may be nil.
func NewView(s *styles.Styles, corpus Corpus) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	items := []Item{{Label: "Query", View: messages.ViewQuery}}
	if corpus != nil {
		items = append(items, Item{Label: "Documents", View: messages.ViewDocuments})
	}
	items = append(items,
		Item{Label: "Help", View: messages.ViewHelp},
		Item{Label: "Quit", Quit: true},
	)

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		corpus: corpus,
		items:  items,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the selection or activates an entry. Digits 1-9 activate
// the matching entry directly.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case key.Matches(msg, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case key.Matches(msg, v.keymap.Submit):
			return v, v.activate(v.selected)
		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		default:
			if n, ok := digit(msg); ok && n <= len(v.items) {
				v.selected = n - 1
				return v, v.activate(v.selected)
			}
		}
	}

	return v, nil
}

func (v *View) activate(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// digit returns n for a single key press of 1-9.
func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("semdex"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Semantic search over a Wikipedia corpus"))
	b.WriteString("\n")
	if v.corpus != nil {
		b.WriteString(v.styles.Subtitle.Render(corpusLine(len(v.corpus.Documents()))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter/1-9] select  [q] quit"))

	return b.String()
}

func corpusLine(n int) string {
	switch n {
	case 0:
		return "No documents indexed"
	case 1:
		return "1 document indexed"
	default:
		return fmt.Sprintf("%d documents indexed", n)
	}
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the entries in display order.
func (v *View) Items() []Item {
	return v.items
}
