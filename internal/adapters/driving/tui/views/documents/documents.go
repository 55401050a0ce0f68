// Package documents provides the built-documents list view for the TUI.
package documents

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/semdex/internal/core/domain"
)

// ErrNoLister is reported when the view has no document source.
var ErrNoLister = errors.New("document listing not available")

// Lister lists built documents in ID order.
// driving.CorpusService satisfies it.
type Lister interface {
	Documents() []domain.Document
}

// View is the documents list view.
type View struct {
	styles *styles.Styles
	lister Lister

	documents    []domain.Document
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, lister Lister) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		lister: lister,
		width:  80,
		height: 24,
	}
}

// Init loads the documents.
func (v *View) Init() tea.Cmd {
	lister := v.lister
	return func() tea.Msg {
		if lister == nil {
			return messages.DocumentsLoaded{Err: ErrNoLister}
		}
		return messages.DocumentsLoaded{Documents: lister.Documents()}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentsLoaded:
		v.err = msg.Err
		v.documents = msg.Documents
		if v.selected >= len(v.documents) {
			v.selected = 0
			v.scrollOffset = 0
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "home", "g":
		v.selected = 0
		v.adjustScroll()
	case "end", "G":
		if len(v.documents) > 0 {
			v.selected = len(v.documents) - 1
			v.adjustScroll()
		}
	case "enter":
		doc := v.SelectedDocument()
		if doc == nil {
			return v, nil
		}
		selected := *doc
		return v, func() tea.Msg {
			return messages.DocumentSelected{Document: selected, Back: messages.ViewDocuments}
		}
	case "r":
		return v, v.Init()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount reserves lines for title, help and padding.
func (v *View) visibleItemCount() int {
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents have been built."))
	default:
		visible := v.visibleItemCount()
		for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visible; i++ {
			b.WriteString(v.renderDocument(i, &v.documents[i]))
			b.WriteString("\n")
		}
		if len(v.documents) > visible {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
				v.scrollOffset+1,
				min(v.scrollOffset+visible, len(v.documents)),
				len(v.documents))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] open  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	maxTitle := v.width/2 - 8
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := doc.Title
	if len([]rune(title)) > maxTitle {
		title = domain.Preview(title, maxTitle-3) + "..."
	}

	line := fmt.Sprintf("%s%3d  %-*s  ", indicator, doc.ID, maxTitle, title)
	if index == v.selected {
		return v.styles.Selected.Render(line + doc.Category)
	}
	return v.styles.Normal.Render(line) + v.styles.Muted.Render(doc.Category)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.adjustScroll()
}

// Documents returns the listed documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the selected row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the selected document, or nil when empty.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < 0 || v.selected >= len(v.documents) {
		return nil
	}
	return &v.documents[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
