package ui

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quotedrop/internal/api"
	"github.com/five82/quotedrop/internal/config"
	"github.com/five82/quotedrop/internal/dropzone"
	"github.com/five82/quotedrop/internal/keybus"
	"github.com/five82/quotedrop/internal/prefs"
	"github.com/five82/quotedrop/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Backend   api.Backend
	Config    *config.Config
	ThemeName string
	PrefsPath string
	StartDir  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *controller
	config    *config.Config
	prefsPath string

	// Subscriptions held for the model's lifetime
	bus      *keybus.Bus
	releases []func()

	// Components
	zone dropzone.Model
	keys keyMap
	help help.Model

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	layout   layout
}

// layout records where things were drawn, for mouse hit testing.
type layout struct {
	zoneTop     int
	buttonRow   int
	buttonWidth int
}

// controller starts probes and uploads against the page. It is shared by
// every copy of the Model so subscriptions made in New keep working.
type controller struct {
	ctx     context.Context
	backend api.Backend
	page    *state.Page
}

var errNoBackend = errors.New("no backend configured")

// New creates the root model and subscribes its key handlers. Call Close when
// the program has exited.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ext := dropzone.DefaultExt
	if opts.Config != nil {
		ext = opts.Config.AcceptExt
	}

	page := &state.Page{}
	ctrl := &controller{ctx: ctx, backend: opts.Backend, page: page}

	zone := dropzone.New(ext)
	zone.OnSelect = page.SelectFile
	zone.OnError = func(message string) {
		log.Printf("file rejected: %s", message)
	}

	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		config:    opts.Config,
		prefsPath: prefsPath,
		bus:       &keybus.Bus{},
		zone:      dropzone.NewModel(zone, opts.StartDir),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
	}

	m.releases = append(m.releases,
		m.bus.Subscribe(m.keys.Submit, func(tea.KeyMsg) tea.Cmd {
			return ctrl.submit(state.TriggerEnter)
		}),
		m.zone.Mount(m.bus),
	)
	return m
}

// Close releases every key subscription made by New. It is safe to call more
// than once.
func (m Model) Close() {
	for _, release := range m.releases {
		release()
	}
}

// Page returns a snapshot of the page state.
func (m Model) Page() state.Snapshot {
	return m.ctrl.page.Snapshot()
}

// Zone returns the drop zone adapter.
func (m Model) Zone() dropzone.Model {
	return m.zone
}

// ThemeName returns the active theme.
func (m Model) ThemeName() string {
	return m.theme.Name
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if !m.ctrl.page.BeginProbe() {
		return nil
	}
	return probeCmd(m.ctx, m.ctrl.backend)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.relayout()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		var cmd tea.Cmd
		m.zone, cmd = m.zone.Update(msg)
		return m, cmd

	case probeDoneMsg:
		m.ctrl.page.FinishProbe(msg.message, msg.err)
		if msg.err != nil {
			log.Printf("backend probe failed: %v", msg.err)
		} else {
			log.Printf("backend reachable: %s", msg.message)
		}
		return m, nil

	case uploadDoneMsg:
		var quote *api.Quote
		if msg.err == nil {
			quote = &msg.quote
		}
		if !m.ctrl.page.FinishUpload(msg.ticket, quote, msg.err) {
			log.Printf("discarding result of superseded upload %d", msg.ticket)
			return m, nil
		}
		if msg.err != nil {
			log.Printf("upload of %s failed (status %d): %v", msg.file, api.StatusOf(msg.err), msg.err)
		} else {
			log.Printf("upload of %s returned %s", msg.file, msg.quote.Symbol)
		}
		return m, nil
	}

	// Directory listings for the picker.
	var cmd tea.Cmd
	m.zone, cmd = m.zone.Update(msg)
	return m, cmd
}

// handleKey routes keyboard input: the drop zone first (picker, paste and its
// own keys), then the key bus, then page-level keys.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help; a paste is still a drop.
		m.showHelp = false
		if !msg.Paste {
			return m, nil
		}
	}

	if m.zone.HandlesKey(msg) {
		dir := m.zone.Dir()
		var cmd tea.Cmd
		m.zone, cmd = m.zone.Update(msg)
		if m.zone.Dir() != dir {
			m.savePrefs()
		}
		return m, cmd
	}

	if cmd, handled := m.bus.Dispatch(msg); handled {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
	case key.Matches(msg, m.keys.Upload):
		return m, m.ctrl.submit(state.TriggerClick)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	dir := m.zone.Dir()
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.zone, cmd = m.zone.Update(msg)
	cmds = append(cmds, cmd)
	if m.zone.Dir() != dir {
		m.savePrefs()
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onButton(msg.X, msg.Y) {
		cmds = append(cmds, m.ctrl.submit(state.TriggerClick))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onButton(x, y int) bool {
	if m.zone.Picking() {
		return false
	}
	return y == m.layout.buttonRow && x >= 0 && x < m.layout.buttonWidth
}

// relayout measures the rendered drop zone and button so mouse events can be
// mapped back to them.
func (m *Model) relayout() {
	styles := m.theme.Styles()
	zoneTop := lipgloss.Height(m.renderHeader(styles)) + 1
	m.zone.Place(0, zoneTop, styles.DropZone(), m.contentWidth())

	m.layout = layout{
		zoneTop:     zoneTop,
		buttonRow:   zoneTop + m.zone.Bounds().Height + 1,
		buttonWidth: lipgloss.Width(m.renderButton(styles)),
	}
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	return m.width
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastDir: m.zone.Dir()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// submit starts an upload when the page accepts trigger.
func (c *controller) submit(trigger state.Trigger) tea.Cmd {
	ticket, file, ok := c.page.Submit(trigger)
	if !ok {
		return nil
	}
	log.Printf("uploading %s (upload %d)", file.Name, ticket)
	return uploadCmd(c.ctx, c.backend, ticket, file)
}

// Messages

type probeDoneMsg struct {
	message string
	err     error
}

type uploadDoneMsg struct {
	ticket state.Ticket
	file   string
	quote  api.Quote
	err    error
}

// Commands

func probeCmd(ctx context.Context, backend api.Backend) tea.Cmd {
	return func() tea.Msg {
		if backend == nil {
			return probeDoneMsg{err: errNoBackend}
		}
		root, err := api.Ping(ctx, backend)
		return probeDoneMsg{message: strings.TrimSpace(root.Message), err: err}
	}
}

func uploadCmd(ctx context.Context, backend api.Backend, ticket state.Ticket, file api.File) tea.Cmd {
	return func() tea.Msg {
		if backend == nil {
			return uploadDoneMsg{ticket: ticket, file: file.Name, err: errNoBackend}
		}
		quote, err := api.UploadQuote(ctx, backend, file)
		return uploadDoneMsg{ticket: ticket, file: file.Name, quote: quote, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the context
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
