package dropzone

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quotedrop/internal/api"
	"github.com/five82/quotedrop/internal/keybus"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(`{"symbol":"ACME"}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func paste(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true}
}

func TestModel_PasteDropsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "my quote.json")

	zone, obs := newObservedZone("")
	m := NewModel(zone, dir)
	m, _ = m.Update(paste("'" + path + "'"))

	if zone.State() != StateSelected {
		t.Fatalf("State = %v, want selected", zone.State())
	}
	if len(obs.selections) != 1 || obs.selections[0].Path != path {
		t.Fatalf("selections = %v, want %s", obs.selections, path)
	}
	if obs.selections[0].Name != "my quote.json" {
		t.Fatalf("Name = %q, want my quote.json", obs.selections[0].Name)
	}
}

func TestModel_PasteOfTextIsEmptyDrop(t *testing.T) {
	zone, obs := newObservedZone("")
	m := NewModel(zone, t.TempDir())
	zone.DragEnter()
	m, _ = m.Update(paste("hello world"))
	if zone.State() != StateIdle {
		t.Fatalf("State = %v, want idle", zone.State())
	}
	if len(obs.selections) != 0 || len(obs.errors) != 0 {
		t.Fatalf("observers notified for plain text: %+v", obs)
	}
}

func TestModel_PasteOfWrongTypeErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.csv")

	zone, obs := newObservedZone("")
	m := NewModel(zone, dir)
	m, _ = m.Update(paste(path))
	if zone.State() != StateError || len(obs.errors) != 1 {
		t.Fatalf("State = %v errors = %v, want error", zone.State(), obs.errors)
	}
}

func TestModel_MouseDragHover(t *testing.T) {
	zone, _ := newObservedZone("")
	m := NewModel(zone, t.TempDir())
	m.SetBounds(Bounds{X: 0, Y: 3, Width: 40, Height: 4})

	m, _ = m.Update(drag(5, 4))
	if zone.State() != StateDragging {
		t.Fatalf("State = %v, want dragging", zone.State())
	}
	m, _ = m.Update(drag(5, 12))
	if zone.State() != StateIdle {
		t.Fatalf("State = %v, want idle after leaving", zone.State())
	}
	m, _ = m.Update(drag(5, 4))
	m, _ = m.Update(release(5, 4))
	if zone.State() != StateIdle {
		t.Fatalf("State = %v, want idle after release without files", zone.State())
	}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func drag(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func click(m Model, x, y int) (Model, tea.Cmd) {
	m, _ = m.Update(press(x, y))
	return m.Update(release(x, y))
}

func TestModel_ClickOpensPickerAndCancelControlCancels(t *testing.T) {
	zone, obs := newObservedZone("")
	m := NewModel(zone, t.TempDir())
	m.SetBounds(Bounds{X: 0, Y: 3, Width: 40, Height: 4})

	m, _ = m.Update(press(2, 4))
	if m.Picking() {
		t.Fatalf("picker opened on press, want release")
	}
	m, cmd := m.Update(release(2, 4))
	if !m.Picking() || cmd == nil {
		t.Fatalf("click on zone: Picking = %v cmd = %v, want picker opening", m.Picking(), cmd)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Picking() {
		t.Fatalf("esc did not close the picker")
	}

	zone.Drop([]api.File{file("quote.json")})
	m, _ = click(m, 2, 5)
	if m.Picking() {
		t.Fatalf("click on cancel control opened the picker")
	}
	if zone.State() != StateIdle || obs.selections[len(obs.selections)-1] != nil {
		t.Fatalf("cancel control did not clear selection: %v", zone.State())
	}

	m, _ = click(m, 60, 4)
	if m.Picking() {
		t.Fatalf("click outside the zone opened the picker")
	}
}

func TestModel_DragStartingInsideZoneIsNotAClick(t *testing.T) {
	zone, _ := newObservedZone("")
	m := NewModel(zone, t.TempDir())
	m.SetBounds(Bounds{X: 0, Y: 3, Width: 40, Height: 4})

	m, _ = m.Update(press(2, 4))
	m, _ = m.Update(drag(3, 4))
	if zone.State() != StateDragging {
		t.Fatalf("State = %v, want dragging", zone.State())
	}
	m, cmd := m.Update(release(3, 4))
	if m.Picking() || cmd != nil {
		t.Fatalf("drag released in the zone opened the picker")
	}
	if zone.State() != StateIdle {
		t.Fatalf("State = %v, want idle after an empty drag", zone.State())
	}
}

func TestModel_PlaceFindsCancelUnderWrappedName(t *testing.T) {
	zone, obs := newObservedZone("")
	m := NewModel(zone, t.TempDir())
	styles := DefaultStyles()
	const width = 30

	name := strings.Repeat("long-quote-name-", 5) + ".json"
	zone.Drop([]api.File{file(name)})
	m.Place(0, 3, styles, width)

	lines := strings.Split(m.View(styles, width), "\n")
	cancelLine := -1
	for i, line := range lines {
		if strings.Contains(line, "[x] Cancel") {
			cancelLine = i
		}
	}
	if cancelLine <= 2 {
		t.Fatalf("cancel drawn at offset %d, want the name to wrap past one line", cancelLine)
	}
	if got := m.Bounds().Height; got != len(lines) {
		t.Fatalf("Bounds().Height = %d, want %d", got, len(lines))
	}

	// The row a one-line name would put the cancel control on is now name.
	m, _ = click(m, 2, 3+2)
	if zone.State() != StateSelected || !m.Picking() {
		t.Fatalf("click on wrapped name: State = %v Picking = %v", zone.State(), m.Picking())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = click(m, 2, 3+cancelLine)
	if m.Picking() {
		t.Fatalf("click on the drawn cancel control opened the picker")
	}
	if zone.State() != StateIdle || obs.selections[len(obs.selections)-1] != nil {
		t.Fatalf("cancel control did not clear selection: %v", zone.State())
	}
}

func TestModel_KeysBrowseAndCancel(t *testing.T) {
	zone, _ := newObservedZone("")
	m := NewModel(zone, t.TempDir())

	if !m.HandlesKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")}) {
		t.Fatalf("HandlesKey(o) = false")
	}
	if m.HandlesKey(tea.KeyMsg{Type: tea.KeyEnter}) {
		t.Fatalf("HandlesKey(enter) = true outside the picker")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if !m.Picking() {
		t.Fatalf("o did not open the picker")
	}
	if !m.HandlesKey(tea.KeyMsg{Type: tea.KeyEnter}) {
		t.Fatalf("picker should own enter while open")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	zone.Drop([]api.File{file("quote.json")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if zone.State() != StateIdle {
		t.Fatalf("x did not cancel: %v", zone.State())
	}
}

func TestModel_MountSubscribesEscapeUntilReleased(t *testing.T) {
	var bus keybus.Bus
	zone, obs := newObservedZone("")
	m := NewModel(zone, t.TempDir())

	release := m.Mount(&bus)
	zone.Drop([]api.File{file("quote.json")})
	bus.Dispatch(tea.KeyMsg{Type: tea.KeyEsc})
	if zone.State() != StateIdle {
		t.Fatalf("Escape via bus: State = %v, want idle", zone.State())
	}
	if obs.selections[len(obs.selections)-1] != nil {
		t.Fatalf("Escape via bus did not report no file")
	}

	release()
	if bus.Len() != 0 {
		t.Fatalf("bus.Len after release = %d, want 0", bus.Len())
	}
	zone.Drop([]api.File{file("quote.json")})
	bus.Dispatch(tea.KeyMsg{Type: tea.KeyEsc})
	if zone.State() != StateSelected {
		t.Fatalf("released Escape still cleared the selection")
	}
}

func TestModel_ViewFollowsState(t *testing.T) {
	zone, _ := newObservedZone("")
	m := NewModel(zone, t.TempDir())
	styles := DefaultStyles()

	if v := m.View(styles, 60); !strings.Contains(v, "Drop a .json file here") {
		t.Fatalf("idle view = %q", v)
	}
	zone.DragEnter()
	if v := m.View(styles, 60); !strings.Contains(v, "Release to drop") {
		t.Fatalf("dragging view = %q", v)
	}
	zone.Drop([]api.File{file("quote.json")})
	v := m.View(styles, 60)
	if !strings.Contains(v, "quote.json") || !strings.Contains(v, "Cancel") {
		t.Fatalf("selected view = %q", v)
	}
	zone.Drop([]api.File{file("quote.txt")})
	if v := m.View(styles, 60); !strings.Contains(v, "Only .json files are accepted") {
		t.Fatalf("error view = %q", v)
	}
}

func TestResolveStartDir(t *testing.T) {
	dir := t.TempDir()
	if got := resolveStartDir(dir); got != dir {
		t.Fatalf("resolveStartDir(%q) = %q", dir, got)
	}
	wd, _ := os.Getwd()
	if got := resolveStartDir(filepath.Join(dir, "missing")); got != wd {
		t.Fatalf("resolveStartDir(missing) = %q, want %q", got, wd)
	}
}
