//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/kirillkom/planetary-dem/internal/adapters/htmldoc"
	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

// FileInput wraps <input type="file">. A drop stages the dropped FileList so
// Assign can hand it to the input.
type FileInput struct {
	el     js.Value
	staged js.Value
}

func (f *FileInput) Files() []domain.FileSelection {
	return selections(f.el.Get("files"))
}

func (f *FileInput) Assign([]domain.FileSelection) {
	if !present(f.staged) {
		return
	}
	f.el.Set("files", f.staged)
	f.staged = js.Undefined()
}

// Stage records the FileList of a drop event for the following Assign.
func (f *FileInput) Stage(list js.Value) {
	f.staged = list
}

func (f *FileInput) Clear() {
	f.el.Set("value", "")
}

func (f *FileInput) Focus() {
	f.el.Call("focus")
}

func selections(list js.Value) []domain.FileSelection {
	if !present(list) {
		return nil
	}
	out := make([]domain.FileSelection, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		file := list.Index(i)
		out = append(out, domain.FileSelection{
			Name:      file.Get("name").String(),
			SizeBytes: int64(file.Get("size").Float()),
			MimeType:  file.Get("type").String(),
		})
	}
	return out
}

type dragEvent struct{ ev js.Value }

func (e dragEvent) PreventDefault()  { e.ev.Call("preventDefault") }
func (e dragEvent) StopPropagation() { e.ev.Call("stopPropagation") }

type dropZone struct{ el js.Value }

func (z dropZone) SetActive(active bool) {
	if active {
		z.el.Get("classList").Call("add", dropActiveClass)
		return
	}
	z.el.Get("classList").Call("remove", dropActiveClass)
}

type previewArea struct{ doc Document }

func (p previewArea) ShowPreview(preview domain.FilePreview) {
	p.RemovePreview()
	input := p.doc.byID(htmldoc.FileInputID)
	if !present(input) {
		return
	}
	block := p.doc.create("div", "class", previewClass+" form-text")
	block.Call("append",
		p.doc.text("Selected: "),
		p.doc.strong(preview.Name),
		p.doc.text(" ("+preview.Size+", "+preview.MimeType+")"),
	)
	input.Call("insertAdjacentElement", "afterend", block)
}

func (p previewArea) RemovePreview() {
	for _, el := range p.doc.queryAll("." + previewClass) {
		el.Call("remove")
	}
}

type valueControl struct{ el js.Value }

func (v valueControl) Value() string { return v.el.Get("value").String() }
func (v valueControl) Focus()        { v.el.Call("focus") }

type helpText struct {
	doc Document
	id  string
}

func (h helpText) SetBand(band domain.Band) {
	el := h.doc.byID(h.id)
	if !present(el) {
		return
	}
	el.Set("textContent", band.Label)
	if band.Name == "" {
		return
	}
	el.Call("append", h.doc.text(" - "), h.doc.strong(band.Name), h.doc.text(" ("+band.Detail+")"))
}

type submitButton struct {
	doc Document
	el  js.Value
}

func (s submitButton) SetBusy(label string) {
	s.el.Set("disabled", true)
	s.el.Call("setAttribute", "aria-busy", "true")
	s.el.Set("textContent", "")
	spinner := s.doc.create("span", "class", "spinner-border spinner-border-sm me-2", "role", "status", "aria-hidden", "true")
	s.el.Call("append", spinner, s.doc.text(label))
}

type statusPanel struct{ doc Document }

func (s statusPanel) InsertProcessingPanel() bool {
	if present(s.doc.byID(htmldoc.StatusPanelID)) {
		return false
	}
	form := s.doc.byID(htmldoc.FormID)
	if !present(form) {
		return false
	}

	d := s.doc
	heading := d.create("h5")
	heading.Set("textContent", "Processing Your Image")
	lead := d.create("p", "class", "text-muted")
	lead.Set("textContent", "Generating Digital Elevation Model using computer vision techniques...")
	progress := d.create("div", "class", "progress mb-3")
	progress.Call("append", d.create("div", "class", "progress-bar progress-bar-striped progress-bar-animated", "role", "progressbar", "style", "width: 100%"))
	note := d.create("p", "class", "small text-muted")
	note.Set("textContent", "This may take a few moments depending on image size and complexity.")

	body := d.create("div", "class", "card-body text-center")
	body.Call("append", heading, lead, progress, note)
	card := d.create("div", "class", "card mission-card")
	card.Call("append", body)
	panel := d.create("div", "class", "processing-status mt-4", "id", htmldoc.StatusPanelID)
	panel.Call("append", card)

	form.Call("insertAdjacentElement", "afterend", panel)
	return true
}

