// Package query provides the main query view for the TUI.
package query

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
)

// maxK caps the +/- adjustment.
const maxK = 50

// View is the query view with input, hits list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.HitList
	statusbar *status.Bar

	engine driving.QueryEngine
	ctx    context.Context

	k          int
	lastQuery  string
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing, false = navigating hits
}

// NewView creates a query view that asks engine for k hits per query.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	engine driving.QueryEngine,
	k, previewLength int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if k <= 0 {
		k = domain.DefaultK
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewHitList(s, previewLength),
		statusbar:  status.NewBar(s, km),
		engine:     engine,
		ctx:        context.Background(),
		k:          k,
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.statusbar.SetK(k)
	return v
}

// WithContext sets the context queries run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			text := strings.TrimSpace(v.input.Value())
			if text == "" {
				return v, nil
			}
			return v, v.submit(text)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if msg.Type == tea.KeyEnter {
		hit := v.list.SelectedHit()
		if hit == nil {
			return v, nil
		}
		doc := hit.Document
		return v, func() tea.Msg {
			return messages.DocumentSelected{Document: doc, Back: messages.ViewQuery}
		}
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.NewQuery):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(key, v.keymap.More):
		return v, v.adjustK(1)
	case keymap.Matches(key, v.keymap.Fewer):
		return v, v.adjustK(-1)
	}

	return v, nil
}

// adjustK changes k and reruns the last query.
func (v *View) adjustK(delta int) tea.Cmd {
	k := v.k + delta
	if k < 1 || k > maxK {
		return nil
	}
	v.k = k
	v.statusbar.SetK(k)
	if v.lastQuery == "" {
		return nil
	}
	return v.submit(v.lastQuery)
}

func (v *View) submit(text string) tea.Cmd {
	v.lastQuery = text
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateQuerying)
	return v.runQuery(text, v.k)
}

func (v *View) runQuery(text string, k int) tea.Cmd {
	engine := v.engine
	ctx := v.ctx
	return func() tea.Msg {
		if engine == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryEngine}
		}
		hits, err := engine.Query(ctx, text, k)
		return messages.QueryCompleted{Query: text, Hits: hits, Err: err}
	}
}

func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetHits(msg.Hits)
	v.statusbar.SetState(status.StateHits)
	v.statusbar.SetMessage("")
	v.statusbar.SetHitCount(len(msg.Hits))
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	// Let the user fix the query straight away.
	v.focusInput = true
	v.input.Focus()
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("semdex"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, input and status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input text.
func (v *View) SetQuery(text string) {
	v.input.SetValue(text)
}

// K returns the number of hits requested per query.
func (v *View) K() int {
	return v.k
}

// Hits returns the hits of the last successful query.
func (v *View) Hits() []domain.Hit {
	return v.list.Hits()
}

// SelectedIndex returns the index of the selected hit.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the error of the last query, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to an empty input. k is kept.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetHits(nil)
	v.lastQuery = ""
	v.err = nil
	v.statusbar.Clear()
}
