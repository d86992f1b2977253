//go:build js && wasm

package dom

import (
	"errors"
	"syscall/js"

	"github.com/kirillkom/planetary-dem/internal/adapters/htmldoc"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
	"github.com/kirillkom/planetary-dem/internal/core/usecase"
)

// Page is the upload page wired to its handlers.
type Page struct {
	Controller *usecase.UploadController
	Gate       *usecase.FormSubmissionGate
	Feedback   *usecase.ParameterFeedback

	controls ports.UploadControls
	file     *FileInput
	funcs    []js.Func
}

// BindUploadPage constructs the handlers once for the current document and
// registers them.
func BindUploadPage(doc Document) (*Page, error) {
	controls, file, err := doc.Controls()
	if err != nil {
		return nil, err
	}
	effects := Effects{}
	controller := usecase.NewUploadController(controls, effects)
	p := &Page{
		Controller: controller,
		Gate:       usecase.NewFormSubmissionGate(controls, controller, effects),
		Feedback:   usecase.NewParameterFeedback(controls),
		controls:   controls,
		file:       file,
	}

	p.on(doc.byID(htmldoc.FileInputID), "change", func(js.Value) {
		_ = p.Controller.OnFileChosen(p.file.Files())
	})

	zone := doc.byID(htmldoc.DropZoneID)
	p.on(zone, "dragenter", func(ev js.Value) { p.Controller.OnDragEnter(dragEvent{ev: ev}) })
	p.on(zone, "dragover", func(ev js.Value) { p.Controller.OnDragOver(dragEvent{ev: ev}) })
	p.on(zone, "dragleave", func(ev js.Value) { p.Controller.OnDragLeave(dragEvent{ev: ev}) })
	p.on(zone, "drop", func(ev js.Value) {
		list := ev.Get("dataTransfer").Get("files")
		p.file.Stage(list)
		_ = p.Controller.OnDrop(dragEvent{ev: ev}, selections(list))
	})

	p.on(doc.byID(htmldoc.FormID), "submit", func(ev js.Value) {
		if err := p.Gate.OnSubmit(); err != nil {
			ev.Call("preventDefault")
		}
	})

	p.on(doc.byID(htmldoc.ScaleID), "input", func(js.Value) { p.Feedback.OnScaleInput() })
	p.on(doc.byID(htmldoc.SmoothingID), "change", func(js.Value) { p.Feedback.OnSmoothingChange() })
	p.on(doc.byID(htmldoc.ElevationID), "input", func(js.Value) { p.Feedback.OnElevationInput() })

	p.onFault(js.Global(), "error", func(ev js.Value) error {
		return errors.New(describe(ev.Get("message")))
	})
	p.onFault(js.Global(), "unhandledrejection", func(ev js.Value) error {
		return errors.New(describe(ev.Get("reason")))
	})

	usecase.Guard(controls.Alerts, "load", p.Feedback.Refresh)
	return p, nil
}

// on registers a guarded handler. A panicking handler cancels a submit so a
// broken gate never lets an unchecked form through.
func (p *Page) on(target js.Value, event string, handler func(ev js.Value)) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		completed := false
		usecase.Guard(p.controls.Alerts, event, func() {
			handler(ev)
			completed = true
		})
		if !completed && event == "submit" && present(ev) {
			ev.Call("preventDefault")
		}
		return nil
	})
	target.Call("addEventListener", event, fn)
	p.funcs = append(p.funcs, fn)
}

func (p *Page) onFault(target js.Value, event string, describeErr func(ev js.Value) error) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		err := errors.New(event)
		if len(args) > 0 {
			err = describeErr(args[0])
		}
		usecase.ReportFault(p.controls.Alerts, event, err)
		return nil
	})
	target.Call("addEventListener", event, fn)
	p.funcs = append(p.funcs, fn)
}

// Release frees the registered callbacks.
func (p *Page) Release() {
	for _, fn := range p.funcs {
		fn.Release()
	}
	p.funcs = nil
}

func describe(v js.Value) string {
	if !present(v) {
		return "unknown fault"
	}
	if v.Type() == js.TypeString {
		return v.String()
	}
	if msg := v.Get("message"); present(msg) {
		return msg.String()
	}
	return v.Call("toString").String()
}
