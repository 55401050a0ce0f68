package query

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/semdex/internal/core/domain"
)

// MockQueryEngine implements driving.QueryEngine for testing.
type MockQueryEngine struct {
	QueryFunc func(ctx context.Context, text string, k int) ([]domain.Hit, error)
	calls     int
	lastText  string
	lastK     int
}

func (m *MockQueryEngine) Query(ctx context.Context, text string, k int) ([]domain.Hit, error) {
	m.calls++
	m.lastText = text
	m.lastK = k
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, text, k)
	}
	return testHits(), nil
}

func testHits() []domain.Hit {
	return []domain.Hit{
		{
			SearchResult: domain.SearchResult{Rank: 1, DocumentID: 0, Distance: 0.4},
			Document:     domain.Document{ID: 0, Title: "Water", Content: "Water boils at 100 C."},
		},
		{
			SearchResult: domain.SearchResult{Rank: 2, DocumentID: 2, Distance: 0.8},
			Document:     domain.Document{ID: 2, Title: "Steam", Content: "Steam is water vapour."},
		},
	}
}

func typeText(v *View, text string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func runCmd(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func newReadyView(engine *MockQueryEngine) *View {
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), engine, 2, 20)
	v.SetDimensions(100, 40)
	return v
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &MockQueryEngine{}, 3, 0)

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Query())
	assert.Equal(t, 3, view.K())
	assert.True(t, view.InputFocused())
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(nil, nil, nil, 0, 0)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.Equal(t, domain.DefaultK, view.K())
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, nil, 0, 0)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := view.WithContext(ctx)

	assert.Equal(t, view, result)
	assert.Equal(t, ctx, view.ctx)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, nil, 0, 0)

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil, 0, 0)

	view.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.True(t, view.Ready())
	assert.Equal(t, 120, view.width)
}

func TestView_Submit_RunsQuery(t *testing.T) {
	engine := &MockQueryEngine{}
	view := newReadyView(engine)
	typeText(view, "boiling water")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, view, cmd)

	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, "boiling water", engine.lastText)
	assert.Equal(t, 2, engine.lastK)
	assert.Len(t, view.Hits(), 2)
	assert.False(t, view.InputFocused())
	assert.Contains(t, view.View(), "[1] Water")
	assert.Contains(t, view.View(), "(dist: 0.400)")
}

func TestView_Submit_BlankDoesNothing(t *testing.T) {
	engine := &MockQueryEngine{}
	view := newReadyView(engine)
	typeText(view, "   ")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, engine.calls)
	assert.True(t, view.InputFocused())
}

func TestView_QueryError_ShowsErrorAndRefocuses(t *testing.T) {
	engine := &MockQueryEngine{
		QueryFunc: func(context.Context, string, int) ([]domain.Hit, error) {
			return nil, domain.ErrEmbeddingFailure
		},
	}
	view := newReadyView(engine)
	typeText(view, "anything")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, view, cmd)

	assert.True(t, errors.Is(view.Err(), domain.ErrEmbeddingFailure))
	assert.True(t, view.InputFocused())
	assert.Contains(t, view.View(), "Error:")
}

func TestView_NoEngine_ReportsError(t *testing.T) {
	view := NewView(nil, nil, nil, 0, 0)
	view.SetDimensions(80, 24)
	typeText(view, "q")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, view, cmd)

	assert.ErrorIs(t, view.Err(), ErrNoQueryEngine)
}

func TestView_HitNavigation(t *testing.T) {
	view := newReadyView(&MockQueryEngine{})
	view.Update(messages.QueryCompleted{Query: "x", Hits: testHits()})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_EnterOnHit_SelectsDocument(t *testing.T) {
	view := newReadyView(&MockQueryEngine{})
	view.Update(messages.QueryCompleted{Query: "x", Hits: testHits()})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "Steam", msg.Document.Title)
	assert.Equal(t, messages.ViewQuery, msg.Back)
}

func TestView_MoreAndFewer_RerunLastQuery(t *testing.T) {
	engine := &MockQueryEngine{}
	view := newReadyView(engine)
	typeText(view, "steam")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, view, cmd)

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	runCmd(t, view, cmd)
	assert.Equal(t, 3, view.K())
	assert.Equal(t, 3, engine.lastK)
	assert.Equal(t, "steam", engine.lastText)

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	runCmd(t, view, cmd)
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	runCmd(t, view, cmd)
	assert.Equal(t, 1, view.K())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, view.K())
	assert.Equal(t, 4, engine.calls)
}

func TestView_NewQuery_RefocusesInput(t *testing.T) {
	view := newReadyView(&MockQueryEngine{})
	typeText(view, "steam")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, view, cmd)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Query())
}

func TestView_Esc_ReturnsToMenu(t *testing.T) {
	view := newReadyView(&MockQueryEngine{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	view := newReadyView(&MockQueryEngine{})
	view.Update(messages.QueryCompleted{Query: "x", Hits: testHits()})
	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Hits())
	assert.NoError(t, view.Err())
	assert.Equal(t, 2, view.K())
}
