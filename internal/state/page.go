package state

import (
	"time"

	"github.com/five82/quotedrop/internal/api"
)

// Lifecycle is the upload lifecycle of the page.
type Lifecycle int

const (
	LifecycleDisabled Lifecycle = iota
	LifecycleReady
	LifecycleUploading
	LifecycleSuccess
	LifecycleError
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleDisabled:
		return "disabled"
	case LifecycleReady:
		return "ready"
	case LifecycleUploading:
		return "uploading"
	case LifecycleSuccess:
		return "success"
	case LifecycleError:
		return "error"
	default:
		return "unknown"
	}
}

// Clickable reports whether the submit control reacts to clicks. A finished
// upload can be repeated, so success stays clickable.
func (l Lifecycle) Clickable() bool {
	return l == LifecycleReady || l == LifecycleError || l == LifecycleSuccess
}

// Connectivity is the outcome of the one-shot backend probe.
type Connectivity int

const (
	ConnectivityLoading Connectivity = iota
	ConnectivityConnected
	ConnectivityError
)

func (c Connectivity) String() string {
	switch c {
	case ConnectivityLoading:
		return "loading"
	case ConnectivityConnected:
		return "connected"
	case ConnectivityError:
		return "error"
	default:
		return "unknown"
	}
}

// Trigger says how a submission was requested.
type Trigger int

const (
	TriggerClick Trigger = iota
	TriggerEnter
)

// Ticket identifies one upload. Only the result for the active ticket is
// applied; anything else arrived after the page moved on.
type Ticket uint64

const (
	uploadFailedMessage = "Upload failed"
	errorPrefix         = "Error: "
)

// Snapshot is a copy of the page state for rendering.
type Snapshot struct {
	Connectivity        Connectivity
	ConnectivityMessage string
	Lifecycle           Lifecycle
	File                *api.File
	Result              *api.Quote
	Error               string
	LastUpdated         time.Time
}

// HasFile reports whether a file is selected.
func (s Snapshot) HasFile() bool {
	return s.File != nil
}

// Page holds connectivity, the selected file, the upload lifecycle and the
// last result. It performs no I/O and is not safe for concurrent use; the UI
// loop owns it and feeds it results as messages.
type Page struct {
	connectivity Connectivity
	connMessage  string
	probed       bool

	lifecycle Lifecycle
	file      *api.File
	result    *api.Quote
	errMsg    string

	active  Ticket
	tickets Ticket
	updated time.Time
}

// BeginProbe reports whether the connectivity probe should run. It returns
// true exactly once per page.
func (p *Page) BeginProbe() bool {
	if p.probed {
		return false
	}
	p.probed = true
	p.connectivity = ConnectivityLoading
	return true
}

// FinishProbe records the probe outcome. message is the backend's greeting on
// success; on failure the error text is kept for display.
func (p *Page) FinishProbe(message string, err error) {
	if err != nil {
		p.connectivity = ConnectivityError
		p.connMessage = err.Error()
	} else {
		p.connectivity = ConnectivityConnected
		p.connMessage = message
	}
	p.touch()
}

// SelectFile stores the file reported by the drop zone (nil clears it),
// resets the lifecycle to ready or disabled and discards any previous error
// and result. An upload still in flight is orphaned.
func (p *Page) SelectFile(file *api.File) {
	if file != nil {
		dup := *file
		p.file = &dup
		p.lifecycle = LifecycleReady
	} else {
		p.file = nil
		p.lifecycle = LifecycleDisabled
	}
	p.errMsg = ""
	p.result = nil
	p.active = 0
	p.touch()
}

// CanSubmit reports whether trigger would start an upload right now.
func (p *Page) CanSubmit(trigger Trigger) bool {
	if p.file == nil {
		return false
	}
	switch trigger {
	case TriggerEnter:
		return p.lifecycle == LifecycleReady || p.lifecycle == LifecycleError
	default:
		return p.lifecycle.Clickable()
	}
}

// Submit starts an upload when trigger is allowed in the current state. It
// returns the ticket to finish the upload with and the file to send.
func (p *Page) Submit(trigger Trigger) (Ticket, api.File, bool) {
	if !p.CanSubmit(trigger) {
		return 0, api.File{}, false
	}
	p.tickets++
	p.active = p.tickets
	p.lifecycle = LifecycleUploading
	p.result = nil
	p.touch()
	return p.active, *p.file, true
}

// FinishUpload applies the outcome of the upload identified by ticket. It
// returns false, changing nothing, when the ticket is no longer active.
func (p *Page) FinishUpload(ticket Ticket, quote *api.Quote, err error) bool {
	if ticket == 0 || ticket != p.active || p.lifecycle != LifecycleUploading {
		return false
	}
	p.active = 0
	if err != nil {
		p.lifecycle = LifecycleError
		p.errMsg = FailureMessage(err)
		p.result = nil
	} else {
		p.lifecycle = LifecycleSuccess
		p.errMsg = ""
		if quote != nil {
			dup := *quote
			p.result = &dup
		}
	}
	p.touch()
	return true
}

// Snapshot returns a copy of the current state.
func (p *Page) Snapshot() Snapshot {
	snap := Snapshot{
		Connectivity:        p.connectivity,
		ConnectivityMessage: p.connMessage,
		Lifecycle:           p.lifecycle,
		Error:               p.errMsg,
		LastUpdated:         p.updated,
	}
	if p.file != nil {
		dup := *p.file
		snap.File = &dup
	}
	if p.result != nil {
		dup := *p.result
		snap.Result = &dup
	}
	return snap
}

// FailureMessage renders an upload failure for display.
func FailureMessage(err error) string {
	msg := api.MessageOf(err)
	if msg == "" {
		msg = uploadFailedMessage
	}
	return errorPrefix + msg
}

func (p *Page) touch() {
	p.updated = time.Now()
}
