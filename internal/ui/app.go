package ui

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/recipemama/internal/controller"
	"github.com/five82/recipemama/internal/prefs"
	"github.com/five82/recipemama/internal/recipeapi"
)

// Screen is the top-level screen shown below the header.
type Screen int

const (
	ScreenBrowse Screen = iota // listing or detail, per controller view state
	ScreenLogs
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputComment
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	Logger     logrus.FieldLogger
	LogPath    string
	Prefs      prefs.Prefs
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *controller.Controller
	log       logrus.FieldLogger
	keys      keyMap
	prefs     prefs.Prefs
	prefsPath string
	logPath   string

	// Controller bridge
	changes     <-chan struct{}
	unsubscribe func()

	// UI state
	theme    Theme
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool
	input    inputMode
	spinner  spinner.Model

	// Data state
	snapshot controller.Snapshot
	visible  []recipeapi.Recipe

	// Listing state
	selectedRow int
	searchInput textinput.Model

	// Detail state
	detailViewport viewport.Model
	detailFor      int // recipe id the viewport was last scrolled for
	commentInput   textinput.Model
	notice         string

	// Log state
	logViewport viewport.Model
	logState    logState
}

// New creates a new Bubble Tea model observing opts.Controller.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	p := opts.Prefs
	if strings.TrimSpace(p.Theme) == "" || strings.TrimSpace(p.Author) == "" {
		def := prefs.Default()
		if strings.TrimSpace(p.Theme) == "" {
			p.Theme = def.Theme
		}
		if strings.TrimSpace(p.Author) == "" {
			p.Author = def.Author
		}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	// Subscribe before the first snapshot so no change is missed. The channel
	// coalesces bursts: one pending signal is enough to trigger a re-read.
	changes := make(chan struct{}, 1)
	unsubscribe := opts.Controller.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m := Model{
		ctx:            ctx,
		ctrl:           opts.Controller,
		log:            log.WithField("component", "ui"),
		keys:           DefaultKeyMap(),
		prefs:          p,
		prefsPath:      prefsPath,
		logPath:        opts.LogPath,
		changes:        changes,
		unsubscribe:    unsubscribe,
		theme:          GetTheme(p.Theme),
		screen:         ScreenBrowse,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		searchInput:    newSearchInput(),
		commentInput:   newCommentInput(),
		detailViewport: viewport.New(0, 0),
		logViewport:    viewport.New(0, 0),
	}
	m.logState = logState{follow: true}
	m.syncSnapshot()
	return m
}

// Close detaches the model from the controller.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForChange(m.ctx, m.changes),
		tickCmd(LogRefreshInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeInputs()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case stateChangedMsg:
		m.syncSnapshot()
		return m, waitForChange(m.ctx, m.changes)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
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

	return m.renderMain()
}

// syncSnapshot re-reads controller state and clamps UI cursors to it.
func (m *Model) syncSnapshot() {
	prevID := 0
	if m.selectedRow < len(m.visible) {
		prevID = m.visible[m.selectedRow].ID
	}

	m.snapshot = m.ctrl.Snapshot()
	m.visible = slices.Collect(m.snapshot.Filtered())

	m.selectedRow = clampRow(m.visible, m.selectedRow, prevID)
	m.updateDetailViewport()
}

func clampRow(items []recipeapi.Recipe, row, preferID int) int {
	if len(items) == 0 {
		return 0
	}
	if preferID > 0 {
		for i, r := range items {
			if r.ID == preferID {
				return i
			}
		}
	}
	return min(max(row, 0), len(items)-1)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.input {
	case inputSearch:
		return m.handleSearchInput(msg)
	case inputComment:
		return m.handleCommentInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.screen == ScreenLogs {
			m.screen = ScreenBrowse
			return m, nil
		}
		m.screen = ScreenLogs
		return m, m.refreshLogs()
	}

	if m.screen == ScreenLogs {
		return m.handleLogsKey(msg)
	}
	if m.snapshot.View.IsDetail() {
		return m.handleDetailKey(msg)
	}
	return m.handleListingKey(msg)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.updateDetailViewport()
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// handleTick processes the periodic refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.screen == ScreenLogs && m.logState.follow {
		cmds = append(cmds, m.refreshLogs())
	}
	cmds = append(cmds, tickCmd(LogRefreshInterval))
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on the current screen.
func (m Model) renderContent() string {
	if m.screen == ScreenLogs {
		return m.renderLogs()
	}
	if m.snapshot.View.IsDetail() && m.snapshot.Selected != nil {
		return m.renderDetail()
	}
	return m.renderListing()
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// Messages

type tickMsg time.Time

type stateChangedMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks until the controller signals a change.
func waitForChange(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changes:
			return stateChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx

	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
