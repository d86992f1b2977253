package htmldoc

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

// Element ids of the upload page.
const (
	FormID          = "upload-form"
	FileInputID     = "file"
	DropZoneID      = "drop-zone"
	ScaleID         = "scale_factor"
	SmoothingID     = "smoothing"
	ElevationID     = "elevation_range"
	SubmitID        = "submit-button"
	StatusPanelID   = "processing-status"
	helpSuffix      = "_help"
	previewClass    = "file-preview"
	alertClass      = "alert"
	dropActiveClass = "drag-active"
)

// UploadControls binds every control of the upload form. It fails when the
// document is not an upload page.
func (d *Document) UploadControls() (ports.UploadControls, error) {
	required := []string{FormID, FileInputID, DropZoneID, ScaleID, SmoothingID, ElevationID, SubmitID,
		ScaleID + helpSuffix, SmoothingID + helpSuffix, ElevationID + helpSuffix}
	for _, id := range required {
		if d.ByID(id) == nil {
			return ports.UploadControls{}, fmt.Errorf("upload page: element #%s not found", id)
		}
	}
	if d.First(atom.Div, "container") == nil {
		return ports.UploadControls{}, fmt.Errorf("upload page: alert container not found")
	}

	return ports.UploadControls{
		File:          &FileInput{doc: d},
		Drop:          dropZone{doc: d},
		Preview:       previewArea{doc: d},
		Alerts:        alertSurface{doc: d},
		Scale:         valueControl{doc: d, id: ScaleID},
		Smoothing:     valueControl{doc: d, id: SmoothingID},
		Elevation:     valueControl{doc: d, id: ElevationID},
		Submit:        submitButton{doc: d},
		Status:        statusPanel{doc: d},
		ScaleHelp:     helpText{doc: d, id: ScaleID + helpSuffix},
		SmoothingHelp: helpText{doc: d, id: SmoothingID + helpSuffix},
		ElevationHelp: helpText{doc: d, id: ElevationID + helpSuffix},
	}, nil
}

// Focused returns the id of the control holding focus, if any.
func (d *Document) Focused() string {
	n := findFirst(d.root, func(n *html.Node) bool { return hasAttr(n, "autofocus") })
	if n == nil {
		return ""
	}
	return attr(n, "id")
}

func (d *Document) focus(id string) {
	for _, n := range findAll(d.root, func(n *html.Node) bool { return hasAttr(n, "autofocus") }) {
		removeAttr(n, "autofocus")
	}
	if n := d.ByID(id); n != nil {
		setAttr(n, "autofocus", "")
	}
}

// SetControlValue writes a parameter value into its input or select.
func (d *Document) SetControlValue(field domain.Field, value string) error {
	n := d.ByID(string(field))
	if n == nil {
		return fmt.Errorf("control %s not found", field)
	}
	if n.DataAtom != atom.Select {
		setAttr(n, "value", value)
		return nil
	}
	found := false
	for _, opt := range findAll(n, func(o *html.Node) bool { return o.DataAtom == atom.Option }) {
		if attr(opt, "value") == value {
			setAttr(opt, "selected", "")
			found = true
		} else {
			removeAttr(opt, "selected")
		}
	}
	if !found {
		return fmt.Errorf("control %s has no option %q", field, value)
	}
	return nil
}

// FileInput holds the selection in memory; a parsed document cannot carry
// file contents.
type FileInput struct {
	doc   *Document
	files []domain.FileSelection
}

func (f *FileInput) Files() []domain.FileSelection {
	out := make([]domain.FileSelection, len(f.files))
	copy(out, f.files)
	return out
}

func (f *FileInput) Assign(files []domain.FileSelection) {
	f.files = append(f.files[:0:0], files...)
	if n := f.doc.ByID(FileInputID); n != nil && len(files) > 0 {
		setAttr(n, "data-selected", files[0].Name)
	}
}

func (f *FileInput) Clear() {
	f.files = nil
	if n := f.doc.ByID(FileInputID); n != nil {
		removeAttr(n, "data-selected")
		removeAttr(n, "value")
	}
}

func (f *FileInput) Focus() { f.doc.focus(FileInputID) }

// DragEvent records what the handler did with a drag or drop.
type DragEvent struct {
	DefaultPrevented   bool
	PropagationStopped bool
}

func (e *DragEvent) PreventDefault()  { e.DefaultPrevented = true }
func (e *DragEvent) StopPropagation() { e.PropagationStopped = true }

type dropZone struct{ doc *Document }

func (z dropZone) SetActive(active bool) {
	if n := z.doc.ByID(DropZoneID); n != nil {
		setClass(n, dropActiveClass, active)
	}
}

type previewArea struct{ doc *Document }

func (p previewArea) ShowPreview(preview domain.FilePreview) {
	p.RemovePreview()
	input := p.doc.ByID(FileInputID)
	if input == nil {
		return
	}
	block := appendChildren(element(atom.Div, "class", previewClass+" form-text"),
		textNode("Selected: "),
		appendChildren(element(atom.Strong), textNode(preview.Name)),
		textNode(" ("+preview.Size+", "+preview.MimeType+")"),
	)
	insertAfter(input, block)
}

func (p previewArea) RemovePreview() {
	for _, n := range p.doc.ByClass(previewClass) {
		detach(n)
	}
}

type alertSurface struct{ doc *Document }

func (a alertSurface) ShowAlert(alert domain.Alert) {
	container := a.doc.First(atom.Div, "container")
	if container == nil {
		return
	}
	for _, n := range a.doc.ByClass(alertClass) {
		if attr(n, "data-category") == string(alert.Category) {
			detach(n)
		}
	}

	variant := "alert-success"
	if alert.Severity == domain.SeverityError {
		variant = "alert-danger"
	}
	banner := appendChildren(
		element(atom.Div,
			"class", "alert "+variant+" alert-dismissible fade show",
			"role", "alert",
			"data-category", string(alert.Category),
			"data-expires-in", strconv.FormatInt(domain.AlertTTL.Milliseconds(), 10),
		),
		textNode(alert.Message),
		element(atom.Button, "type", "button", "class", "btn-close", "data-bs-dismiss", "alert", "aria-label", "Close"),
	)
	prepend(container, banner)
}

type valueControl struct {
	doc *Document
	id  string
}

func (v valueControl) Value() string {
	n := v.doc.ByID(v.id)
	if n == nil {
		return ""
	}
	if n.DataAtom != atom.Select {
		return attr(n, "value")
	}
	options := findAll(n, func(o *html.Node) bool { return o.DataAtom == atom.Option })
	for _, opt := range options {
		if hasAttr(opt, "selected") {
			return optionValue(opt)
		}
	}
	if len(options) > 0 {
		return optionValue(options[0])
	}
	return ""
}

func optionValue(opt *html.Node) string {
	if hasAttr(opt, "value") {
		return attr(opt, "value")
	}
	return textContent(opt)
}

func (v valueControl) Focus() { v.doc.focus(v.id) }

type helpText struct {
	doc *Document
	id  string
}

func (h helpText) SetBand(band domain.Band) {
	n := h.doc.ByID(h.id)
	if n == nil {
		return
	}
	clearChildren(n)
	n.AppendChild(textNode(band.Label))
	if band.Name == "" {
		return
	}
	n.AppendChild(textNode(" - "))
	n.AppendChild(appendChildren(element(atom.Strong), textNode(band.Name)))
	n.AppendChild(textNode(" (" + band.Detail + ")"))
}

type submitButton struct{ doc *Document }

func (s submitButton) SetBusy(label string) {
	n := s.doc.ByID(SubmitID)
	if n == nil {
		return
	}
	setAttr(n, "disabled", "")
	setAttr(n, "aria-busy", "true")
	setText(n, label)
}

type statusPanel struct{ doc *Document }

func (s statusPanel) InsertProcessingPanel() bool {
	if s.doc.ByID(StatusPanelID) != nil {
		return false
	}
	form := s.doc.ByID(FormID)
	if form == nil {
		return false
	}
	insertAfter(form, processingPanel())
	return true
}

func processingPanel() *html.Node {
	body := appendChildren(element(atom.Div, "class", "card-body text-center"),
		appendChildren(element(atom.H5), textNode("Processing Your Image")),
		appendChildren(element(atom.P, "class", "text-muted"),
			textNode("Generating Digital Elevation Model using computer vision techniques...")),
		appendChildren(element(atom.Div, "class", "progress mb-3"),
			element(atom.Div, "class", "progress-bar progress-bar-striped progress-bar-animated", "role", "progressbar")),
		appendChildren(element(atom.P, "class", "small text-muted"),
			textNode("This may take a few moments depending on image size and complexity.")),
	)
	return appendChildren(element(atom.Div, "class", "processing-status mt-4", "id", StatusPanelID),
		appendChildren(element(atom.Div, "class", "card mission-card"), body))
}

// Alerts returns the banner area of any page with a .container element.
func (d *Document) Alerts() ports.AlertSurface {
	return alertSurface{doc: d}
}
