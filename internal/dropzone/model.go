package dropzone

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quotedrop/internal/api"
	"github.com/five82/quotedrop/internal/keybus"
)

const pickerHeight = 10

// KeyMap holds the drop zone's key bindings.
type KeyMap struct {
	Browse      key.Binding
	Cancel      key.Binding
	Escape      key.Binding
	ClosePicker key.Binding
}

// DefaultKeyMap returns the default drop zone bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Browse: key.NewBinding(
			key.WithKeys("o", " "),
			key.WithHelp("o/space", "Browse for a file"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Cancel selection"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear selection"),
		),
		ClosePicker: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close picker"),
		),
	}
}

// Bounds is the screen rectangle the zone was last drawn in.
type Bounds struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Styles control how the zone is drawn in each state.
type Styles struct {
	Idle     lipgloss.Style
	Dragging lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style

	Hint      lipgloss.Style
	FileName  lipgloss.Style
	ErrorText lipgloss.Style
	Cancel    lipgloss.Style
}

// DefaultStyles returns plain styles with rounded borders.
func DefaultStyles() Styles {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Styles{
		Idle:      box,
		Dragging:  box.BorderStyle(lipgloss.DoubleBorder()),
		Selected:  box,
		Error:     box,
		Hint:      lipgloss.NewStyle(),
		FileName:  lipgloss.NewStyle().Bold(true),
		ErrorText: lipgloss.NewStyle().Bold(true),
		Cancel:    lipgloss.NewStyle().Underline(true),
	}
}

// Model adapts a Zone to Bubble Tea: pastes become drops, mouse drags become
// hover changes, clicks and keys open a file picker.
type Model struct {
	zone    *Zone
	keys    KeyMap
	picker  filepicker.Model
	picking bool
	dir     string
	bounds  Bounds
	hover   bool

	// cancelRow is the cancel control's row relative to bounds.Y.
	cancelRow int

	// pressed is set by a left press inside the zone and cleared by motion,
	// so only a press and release in place counts as a click.
	pressed bool
}

// NewModel wraps zone. The picker opens in startDir, or the working directory
// when startDir is empty or missing.
func NewModel(zone *Zone, startDir string) Model {
	dir := resolveStartDir(startDir)
	return Model{
		zone:   zone,
		keys:   DefaultKeyMap(),
		picker: newPicker(dir),
		dir:    dir,

		// top border, one line of file name
		cancelRow: 2,
	}
}

// Zone returns the wrapped state machine.
func (m Model) Zone() *Zone { return m.zone }

// Keys returns the bindings in use.
func (m Model) Keys() KeyMap { return m.keys }

// Picking reports whether the file picker is open. While it is, the picker
// owns the keyboard.
func (m Model) Picking() bool { return m.picking }

// Dir returns the directory the picker last opened in or picked from.
func (m Model) Dir() string { return m.dir }

// SetBounds records where the zone was drawn, for mouse hit testing.
func (m *Model) SetBounds(b Bounds) { m.bounds = b }

// Place records where View(styles, width) is drawn, with its top-left corner
// at (x, y). Unlike SetBounds it measures the rendered box, so the cancel
// control is found even when a long file name wraps.
func (m *Model) Place(x, y int, styles Styles, width int) {
	m.bounds = Bounds{X: x, Y: y, Width: width, Height: lipgloss.Height(m.View(styles, width))}

	box := m.boxStyle(styles)
	name := m.frame(styles, width).Render(styles.FileName.Render(m.zone.FileName()))
	m.cancelRow = lipgloss.Height(name) - box.GetBorderBottomSize() - box.GetPaddingBottom()
}

// Bounds returns the rectangle set by SetBounds.
func (m Model) Bounds() Bounds { return m.bounds }

// Mount subscribes the zone's Escape handler on bus for as long as the zone
// is on screen. The caller must invoke the returned release func on teardown.
func (m Model) Mount(bus *keybus.Bus) (release func()) {
	zone := m.zone
	return bus.Subscribe(m.keys.Escape, func(tea.KeyMsg) tea.Cmd {
		zone.Escape()
		return nil
	})
}

// Update handles messages addressed to the zone.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.picking {
			return m, nil
		}
		return m.handleMouse(msg)
	}

	// Directory listings and window sizes belong to the picker.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// HandlesKey reports whether Update consumes msg on its own, without the
// page's global bindings.
func (m Model) HandlesKey(msg tea.KeyMsg) bool {
	if m.picking || msg.Paste {
		return true
	}
	return key.Matches(msg, m.keys.Browse) || key.Matches(msg, m.keys.Cancel)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.Paste:
		m.zone.Drop(filesFromPaste(string(msg.Runes)))
		return m, nil
	case key.Matches(msg, m.keys.Browse):
		return m.openPicker()
	case key.Matches(msg, m.keys.Cancel):
		m.zone.Cancel()
		return m, nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	inside := m.bounds.Contains(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.pressed = false
		if inside && !m.hover {
			m.zone.DragEnter()
		} else if !inside && m.hover {
			m.zone.DragLeave()
		}
		m.hover = inside
	case tea.MouseActionRelease:
		clicked := m.pressed && inside
		m.pressed = false
		if m.hover {
			m.hover = false
			// A drag released without a paste carried no files.
			m.zone.Drop(nil)
			return m, nil
		}
		if clicked && m.zone.Click(m.targetAt(msg.Y)) {
			return m.openPicker()
		}
	case tea.MouseActionPress:
		m.pressed = msg.Button == tea.MouseButtonLeft && inside
	}
	return m, nil
}

// targetAt maps a row inside the zone to what was clicked. The cancel control
// is drawn directly under the file name.
func (m Model) targetAt(y int) Target {
	if m.zone.State() == StateSelected && y == m.bounds.Y+m.cancelRow {
		return TargetCancel
	}
	return TargetZone
}

func (m Model) openPicker() (Model, tea.Cmd) {
	m.picker = newPicker(m.dir)
	m.picking = true
	return m, m.picker.Init()
}

func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ClosePicker) {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		m.dir = filepath.Dir(path)
		m.zone.Change([]api.File{api.FileFromPath(path)})
		// A fresh picker lets the same file be chosen again next time.
		m.picker = newPicker(m.dir)
		return m, nil
	}
	if current := strings.TrimSpace(m.picker.CurrentDirectory); current != "" {
		m.dir = current
	}
	return m, cmd
}

// View renders the zone at the given outer width.
func (m Model) View(styles Styles, width int) string {
	var lines []string
	ext := m.zone.Ext()
	switch {
	case m.picking:
		lines = append(lines,
			styles.Hint.Render("Pick a "+ext+" file  (enter select, esc close)"),
			m.picker.View())
	case m.zone.State() == StateDragging:
		lines = append(lines,
			styles.Hint.Render("Release to drop the file"),
			"")
	case m.zone.State() == StateSelected:
		lines = append(lines,
			styles.FileName.Render(m.zone.FileName()),
			styles.Cancel.Render("[x] Cancel"))
	case m.zone.State() == StateError:
		lines = append(lines,
			styles.ErrorText.Render(m.zone.Err()),
			styles.Hint.Render("Drop another file or press o to browse"))
	default:
		lines = append(lines,
			styles.Hint.Render("Drop a "+ext+" file here"),
			styles.Hint.Render("or click / press o to browse"))
	}
	return m.frame(styles, width).Render(strings.Join(lines, "\n"))
}

// frame is the state's box sized to the given outer width.
func (m Model) frame(styles Styles, width int) lipgloss.Style {
	box := m.boxStyle(styles)
	inner := width - box.GetHorizontalBorderSize()
	if inner < 10 {
		inner = 10
	}
	return box.Width(inner)
}

func (m Model) boxStyle(styles Styles) lipgloss.Style {
	switch m.zone.State() {
	case StateDragging:
		return styles.Dragging
	case StateSelected:
		return styles.Selected
	case StateError:
		return styles.Error
	default:
		return styles.Idle
	}
}

func newPicker(dir string) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AutoHeight = false
	fp.Height = pickerHeight
	fp.ShowPermissions = false
	return fp
}

func resolveStartDir(dir string) string {
	if dir = strings.TrimSpace(dir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
