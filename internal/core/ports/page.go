package ports

import "github.com/kirillkom/planetary-dem/internal/core/domain"

// The interfaces below are the page controls the upload controller and the
// submission gate drive. They are implemented over the live browser DOM and
// over a parsed HTML document.

// FileInput is the native file picker.
type FileInput interface {
	// Files reports the current selection; empty when nothing is selected.
	Files() []domain.FileSelection
	// Assign replaces the selection, as a drop does.
	Assign(files []domain.FileSelection)
	Clear()
	Focus()
}

// DropTarget is the region that accepts dragged files.
type DropTarget interface {
	SetActive(active bool)
}

// DragEvent is a drag or drop event delivered to the drop target.
type DragEvent interface {
	PreventDefault()
	StopPropagation()
}

// PreviewArea shows the single preview block for the accepted file.
type PreviewArea interface {
	// ShowPreview replaces any existing preview block.
	ShowPreview(preview domain.FilePreview)
	RemovePreview()
}

// AlertSurface is the dismissible, self-expiring banner area.
type AlertSurface interface {
	// ShowAlert clears banners of the same category, then shows alert.
	ShowAlert(alert domain.Alert)
}

// ValueControl is a parameter input or select.
type ValueControl interface {
	Value() string
	Focus()
}

// HelpText is the advisory line next to a parameter control.
type HelpText interface {
	SetBand(band domain.Band)
}

// SubmitControl is the form's submit button.
type SubmitControl interface {
	SetBusy(label string)
}

// StatusPanel is the processing-status panel inserted after the form.
type StatusPanel interface {
	// InsertProcessingPanel inserts the panel unless it already exists and
	// reports whether it inserted one.
	InsertProcessingPanel() bool
}

// Effects is the decorative layer. Calls are fire-and-forget; nothing it
// does is read back.
type Effects interface {
	FileAccepted(sel domain.FileSelection)
	SubmissionStarted()
}

// UploadControls groups the controls owned by one upload form.
type UploadControls struct {
	File      FileInput
	Drop      DropTarget
	Preview   PreviewArea
	Alerts    AlertSurface
	Scale     ValueControl
	Smoothing ValueControl
	Elevation ValueControl
	Submit    SubmitControl
	Status    StatusPanel

	ScaleHelp     HelpText
	SmoothingHelp HelpText
	ElevationHelp HelpText
}
