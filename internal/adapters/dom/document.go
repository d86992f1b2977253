//go:build js && wasm

// Package dom binds the upload controls to the live browser document.
package dom

import (
	"fmt"
	"syscall/js"

	"github.com/kirillkom/planetary-dem/internal/adapters/htmldoc"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

const (
	helpSuffix      = "_help"
	previewClass    = "file-preview"
	dropActiveClass = "drag-active"
)

// Document is the window's document.
type Document struct {
	doc js.Value
}

func Current() Document {
	return Document{doc: js.Global().Get("document")}
}

func (d Document) byID(id string) js.Value {
	return d.doc.Call("getElementById", id)
}

func (d Document) query(selector string) js.Value {
	return d.doc.Call("querySelector", selector)
}

func (d Document) queryAll(selector string) []js.Value {
	list := d.doc.Call("querySelectorAll", selector)
	out := make([]js.Value, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, list.Index(i))
	}
	return out
}

func (d Document) create(tag string, attrs ...string) js.Value {
	el := d.doc.Call("createElement", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Call("setAttribute", attrs[i], attrs[i+1])
	}
	return el
}

func (d Document) text(s string) js.Value {
	return d.doc.Call("createTextNode", s)
}

func (d Document) strong(s string) js.Value {
	el := d.create("strong")
	el.Set("textContent", s)
	return el
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

// Controls resolves the upload form's elements. It fails when the page is
// not the upload page.
func (d Document) Controls() (ports.UploadControls, *FileInput, error) {
	required := []string{
		htmldoc.FormID, htmldoc.FileInputID, htmldoc.DropZoneID,
		htmldoc.ScaleID, htmldoc.SmoothingID, htmldoc.ElevationID, htmldoc.SubmitID,
	}
	for _, id := range required {
		if !present(d.byID(id)) {
			return ports.UploadControls{}, nil, fmt.Errorf("upload page: missing #%s", id)
		}
	}
	container := d.query("div.container")
	if !present(container) {
		return ports.UploadControls{}, nil, fmt.Errorf("upload page: missing .container")
	}

	file := &FileInput{el: d.byID(htmldoc.FileInputID)}
	return ports.UploadControls{
		File:      file,
		Drop:      dropZone{el: d.byID(htmldoc.DropZoneID)},
		Preview:   previewArea{doc: d},
		Alerts:    NewAlerts(d),
		Scale:     valueControl{el: d.byID(htmldoc.ScaleID)},
		Smoothing: valueControl{el: d.byID(htmldoc.SmoothingID)},
		Elevation: valueControl{el: d.byID(htmldoc.ElevationID)},
		Submit:    submitButton{doc: d, el: d.byID(htmldoc.SubmitID)},
		Status:    statusPanel{doc: d},

		ScaleHelp:     helpText{doc: d, id: htmldoc.ScaleID + helpSuffix},
		SmoothingHelp: helpText{doc: d, id: htmldoc.SmoothingID + helpSuffix},
		ElevationHelp: helpText{doc: d, id: htmldoc.ElevationID + helpSuffix},
	}, file, nil
}
