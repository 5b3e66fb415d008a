package dropzone

import (
	"fmt"
	"strings"

	"github.com/five82/quotedrop/internal/api"
)

// State is the drop zone's own view of the selection. It is deliberately
// independent of the upload lifecycle owned by the page.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateSelected
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSelected:
		return "selected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultExt is the extension accepted when none is configured.
const DefaultExt = ".json"

// Target identifies what a click landed on.
type Target int

const (
	TargetZone Target = iota
	TargetCancel
)

// Zone is the file selection state machine. It reports the current file (or
// nil when the selection is cleared) through OnSelect and validation failures
// through OnError. Both observers are optional.
type Zone struct {
	OnSelect func(file *api.File)
	OnError  func(message string)

	ext      string
	state    State
	fileName string
	errMsg   string
}

// New returns an idle zone accepting files whose name ends with ext
// (case-insensitive). An empty ext means DefaultExt.
func New(ext string) *Zone {
	if strings.TrimSpace(ext) == "" {
		ext = DefaultExt
	}
	return &Zone{ext: ext}
}

// State returns the current state.
func (z *Zone) State() State { return z.state }

// FileName returns the display name of the selected file.
func (z *Zone) FileName() string { return z.fileName }

// Err returns the validation message shown in the error state.
func (z *Zone) Err() string { return z.errMsg }

// Ext returns the required extension.
func (z *Zone) Ext() string { return z.ext }

// DragEnter marks a drag hovering over the zone. A selected zone keeps
// showing its file.
func (z *Zone) DragEnter() {
	if z.state == StateSelected {
		return
	}
	z.state = StateDragging
}

// DragLeave ends a hover without a drop.
func (z *Zone) DragLeave() {
	if z.state == StateDragging {
		z.state = StateIdle
	}
}

// Drop handles files dropped on the zone. Only the first file is considered.
// An empty drop returns a dragging or error zone to idle without notifying
// anyone.
func (z *Zone) Drop(files []api.File) {
	if len(files) == 0 {
		if z.state == StateDragging || z.state == StateError {
			z.state = StateIdle
			z.errMsg = ""
		}
		return
	}
	z.accept(files[0])
}

// Change handles a file-input change. An empty change is ignored; otherwise
// only the first file is considered.
func (z *Zone) Change(files []api.File) {
	if len(files) == 0 {
		return
	}
	z.accept(files[0])
}

// Cancel clears the selection. It only has an effect while selected, which is
// the only state the cancel control is shown in.
func (z *Zone) Cancel() bool {
	if z.state != StateSelected {
		return false
	}
	z.state = StateIdle
	z.fileName = ""
	z.notifySelect(nil)
	return true
}

// Escape is the keyboard form of Cancel and is a no-op outside the selected
// state.
func (z *Zone) Escape() bool {
	return z.Cancel()
}

// Click handles a click on the zone. It reports whether the file picker
// should open, which is the case for any click that is not on the cancel
// control.
func (z *Zone) Click(target Target) (openPicker bool) {
	if target == TargetCancel && z.state == StateSelected {
		z.Cancel()
		return false
	}
	return true
}

func (z *Zone) accept(file api.File) {
	if !file.HasExt(z.ext) {
		wasSelected := z.state == StateSelected
		z.state = StateError
		z.fileName = ""
		z.errMsg = fmt.Sprintf("Only %s files are accepted", z.ext)
		if wasSelected {
			// The page must not keep uploading a file the zone no longer shows.
			z.notifySelect(nil)
		}
		if z.OnError != nil {
			z.OnError(z.errMsg)
		}
		return
	}
	z.state = StateSelected
	z.fileName = file.Name
	z.errMsg = ""
	z.notifySelect(&file)
}

func (z *Zone) notifySelect(file *api.File) {
	if z.OnSelect != nil {
		z.OnSelect(file)
	}
}
