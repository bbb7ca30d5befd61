package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/catalogue/internal/debounce"
	"github.com/five82/catalogue/internal/persist"
	"github.com/five82/catalogue/internal/state"
	"github.com/five82/catalogue/internal/view"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      *state.Store
	Controller *view.Controller
	Theme      *persist.Cell[string] // nil keeps the theme in memory only
	Debounce   time.Duration
	Clock      debounce.Clock // nil uses the real clock
	SourceName string
	LogFile    string
	Logger     *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store   *state.Store
	ctrl    *view.Controller
	logger  *zap.Logger
	source  string
	logFile string

	// UI state
	keys      keyMap
	theme     Theme
	themeCell *persist.Cell[string]
	width     int
	height    int
	ready     bool
	selected  int // row within the current page

	// Data state
	snapshot   state.Snapshot
	generation uint64

	// Search: keystrokes go to the follower, the controller only sees the
	// settled value.
	search    textinput.Model
	searching bool
	follower  *debounce.Follower[string]
	settled   chan struct{}
	done      chan struct{}
	stopOnce  *sync.Once

	spinner   spinner.Model
	paginator paginator.Model
	help      help.Model

	showHelp        bool
	showDiagnostics bool
	diagnostics     viewport.Model
	diagnosticsErr  error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = view.NewController(nil, nil, 0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := ""
	if opts.Theme != nil {
		themeName = opts.Theme.Get()
	}

	settled := make(chan struct{}, 1)
	follower := debounce.New("", opts.Debounce, opts.Clock, func(string) {
		select {
		case settled <- struct{}{}:
		default:
		}
	})

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "search by name"
	input.CharLimit = 128

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = 1

	return Model{
		store:     opts.Store,
		ctrl:      ctrl,
		logger:    logger,
		source:    opts.SourceName,
		logFile:   opts.LogFile,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		themeCell: opts.Theme,
		search:    input,
		follower:  follower,
		settled:   settled,
		done:      make(chan struct{}),
		stopOnce:  &sync.Once{},
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		paginator: pager,
		help:      help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(snapshotTick),
		m.spinner.Tick,
		waitForSettle(m.settled, m.done),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width/3, 16)
		if !m.ready {
			m.diagnostics = viewport.New(max(msg.Width-6, 10), max(msg.Height-8, 3))
		} else {
			m.diagnostics.Width = max(msg.Width-6, 10)
			m.diagnostics.Height = max(msg.Height-8, 3)
		}
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(snapshotTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case searchSettledMsg:
		m.applySearch()
		return m, waitForSettle(m.settled, m.done)

	case diagnosticsMsg:
		m.diagnosticsErr = msg.err
		m.diagnostics.SetContent(msg.content())
		m.diagnostics.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.Loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showDiagnostics {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showDiagnostics {
		return m.handleDiagnosticsKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.themeCell != nil {
			m.themeCell.Set(m.theme.Name)
		}

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = true
		return m, loadDiagnosticsCmd(m.logFile)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextCategory):
		m.ctrl.CycleCategory(1)
		m.selected = 0

	case key.Matches(msg, m.keys.PrevCategory):
		m.ctrl.CycleCategory(-1)
		m.selected = 0

	case key.Matches(msg, m.keys.SortName):
		m.selectSort(view.SortByName)

	case key.Matches(msg, m.keys.SortPrice):
		m.selectSort(view.SortByPrice)

	case key.Matches(msg, m.keys.SortRating):
		m.selectSort(view.SortByRating)

	case key.Matches(msg, m.keys.FavouritesOnly):
		m.ctrl.SetFavouritesOnly(!m.ctrl.State().FavouritesOnly)
		m.selected = 0

	case key.Matches(msg, m.keys.ToggleFavourite):
		m.toggleSelectedFavourite()

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.ctrl.Frame().Entries)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.ctrl.PrevPage() {
			m.selected = 0
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.ctrl.NextPage() {
			m.selected = 0
		}
	}
	return m, nil
}

// handleSearchKey routes input to the search box while it has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.setSearchInput("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearchInput(m.search.Value())
	return m, cmd
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.teardown()
		return m, tea.Quit
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.Diagnostics), msg.String() == "q":
		m.showDiagnostics = false
		return m, nil
	}
	var cmd tea.Cmd
	m.diagnostics, cmd = m.diagnostics.Update(msg)
	return m, cmd
}

// setSearchInput records raw search text and feeds the debounce follower.
// With no delay the follower settles synchronously and the search applies
// at once.
func (m *Model) setSearchInput(raw string) {
	if raw == m.ctrl.State().SearchInput {
		return
	}
	m.ctrl.SetSearchInput(raw)
	m.follower.Set(raw)
	if !m.follower.Pending() {
		m.applySearch()
	}
}

func (m *Model) applySearch() {
	term := m.follower.Value()
	if term == m.ctrl.State().Search {
		return
	}
	m.logger.Debug("search settled", zap.String("term", term))
	m.ctrl.SetSearch(term)
	m.selected = 0
}

func (m *Model) selectSort(by view.SortKey) {
	m.ctrl.SelectSort(by)
	m.selected = 0
}

func (m *Model) toggleSelectedFavourite() {
	entries := m.ctrl.Frame().Entries
	if m.selected < 0 || m.selected >= len(entries) {
		return
	}
	id := entries[m.selected].Item.ID
	member := m.ctrl.ToggleFavourite(id)
	m.logger.Debug("favourite toggled", zap.Int64("id", id), zap.Bool("favourite", member))
	m.clampSelection()
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !snap.Loaded || snap.Generation == m.generation {
		return
	}
	m.generation = snap.Generation
	m.ctrl.SetItems(snap.Items)
	m.clampSelection()
}

func (m *Model) clampSelection() {
	n := len(m.ctrl.Frame().Entries)
	if m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

// teardown stops the search follower so no settle fires after exit. Safe to
// call more than once.
func (m Model) teardown() {
	m.stopOnce.Do(func() {
		m.follower.Stop()
		close(m.done)
	})
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type searchSettledMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitForSettle(settled <-chan struct{}, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-settled:
			return searchSettledMsg{}
		case <-done:
			return nil
		}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.teardown()

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
