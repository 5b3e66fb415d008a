package state

// ControlView is what the submit control shows for a lifecycle state.
type ControlView struct {
	Label       string
	Interactive bool
	Lifecycle   Lifecycle
}

// SubmitControl maps a lifecycle state to the submit control's label and
// whether it accepts clicks. It holds no state of its own.
func SubmitControl(l Lifecycle) ControlView {
	view := ControlView{Lifecycle: l, Interactive: l.Clickable()}
	switch l {
	case LifecycleReady:
		view.Label = "Upload"
	case LifecycleUploading:
		view.Label = "Uploading..."
	case LifecycleSuccess:
		view.Label = "Uploaded - upload again"
	case LifecycleError:
		view.Label = "Retry upload"
	default:
		view.Label = "Select a file"
	}
	return view
}
