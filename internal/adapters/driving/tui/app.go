package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/semdex/internal/adapters/driving/tui/views/query"
	"github.com/custodia-labs/semdex/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView      *menu.View
	queryView     *query.View
	documentsView *documents.View
	documentView  *document.View

	currentView messages.ViewType

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	// A nil CorpusService must not reach the view as a typed nil.
	var lister documents.Lister
	if ports.Corpus != nil {
		lister = ports.Corpus
	}

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s, lister),
		queryView:     query.NewView(s, nil, ports.Query, ports.K, ports.PreviewLength),
		documentsView: documents.NewView(s, lister),
		documentView:  document.NewView(s),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context queries run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.queryView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("semdex"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		prev := a.currentView
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewQuery:
			// Returning from a document keeps the hits on screen.
			if prev == messages.ViewDocument {
				return a, nil
			}
			a.queryView.Reset()
			return a, a.queryView.Init()
		case messages.ViewDocuments:
			return a, a.documentsView.Init()
		case messages.ViewMenu, messages.ViewDocument, messages.ViewHelp:
		}
		return a, nil

	case messages.QueryCompleted:
		a.queryView, cmd = a.queryView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.DocumentsLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.DocumentSelected:
		a.documentView.SetDocument(msg.Document, msg.Back)
		a.currentView = messages.ViewDocument
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward hands msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuery:
		a.queryView, cmd = a.queryView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewQuery:
		return a.queryView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocument:
		return a.documentView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Query:
  (type)      Enter a question
  enter       Run the query

Hits:
  j/k, ↑/↓    Navigate hits
  enter       Open document
  n           New query
  +/-         More or fewer hits

Document:
  j/k, ↑/↓    Scroll
  g/G         Top/bottom

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current query input text.
func (a *App) Query() string {
	return a.queryView.Query()
}

// Hits returns the hits of the last successful query.
func (a *App) Hits() []domain.Hit {
	return a.queryView.Hits()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Document returns the document shown in the reader, or nil.
func (a *App) Document() *domain.Document {
	return a.documentView.Document()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.queryView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.documentView.SetDimensions(width, height)
}
