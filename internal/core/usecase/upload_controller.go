package usecase

import (
	"log/slog"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

// UploadController owns the file input, drop target and preview of one
// upload form. Handlers run to completion on the page's event loop, so the
// controller holds no locks.
type UploadController struct {
	controls ports.UploadControls
	effects  ports.Effects

	state     domain.UIState
	selection *domain.FileSelection
}

func NewUploadController(controls ports.UploadControls, effects ports.Effects) *UploadController {
	if effects == nil {
		effects = NopEffects{}
	}
	return &UploadController{
		controls: controls,
		effects:  effects,
		state:    domain.StateIdle,
	}
}

func (c *UploadController) State() domain.UIState {
	return c.state
}

// Selection returns the accepted file, if any.
func (c *UploadController) Selection() (domain.FileSelection, bool) {
	if c.selection == nil {
		return domain.FileSelection{}, false
	}
	return *c.selection, true
}

// OnFileChosen handles a change of the file input. Only the first file is
// considered.
func (c *UploadController) OnFileChosen(files []domain.FileSelection) error {
	c.selection = nil
	c.state = domain.StateIdle
	c.controls.Preview.RemovePreview()

	if len(files) == 0 {
		return nil
	}
	sel := files[0]

	if err := domain.ValidateFile(sel); err != nil {
		c.controls.File.Clear()
		c.showValidationError(err)
		slog.Info("file_rejected", "name", sel.Name, "size_bytes", sel.SizeBytes, "mime_type", sel.MimeType, "error", err)
		return err
	}

	c.selection = &sel
	c.state = domain.StateFilePreviewed
	c.controls.Preview.ShowPreview(domain.NewFilePreview(sel))
	c.effects.FileAccepted(sel)
	slog.Debug("file_previewed", "name", sel.Name, "size_bytes", sel.SizeBytes)
	return nil
}

func (c *UploadController) OnDragEnter(ev ports.DragEvent) { c.onDragOver(ev) }

func (c *UploadController) OnDragOver(ev ports.DragEvent) { c.onDragOver(ev) }

func (c *UploadController) onDragOver(ev ports.DragEvent) {
	ev.PreventDefault()
	ev.StopPropagation()
	c.controls.Drop.SetActive(true)
}

func (c *UploadController) OnDragLeave(ev ports.DragEvent) {
	ev.PreventDefault()
	ev.StopPropagation()
	c.controls.Drop.SetActive(false)
}

// OnDrop assigns the dropped files to the file input and then takes the
// same path as a change event.
func (c *UploadController) OnDrop(ev ports.DragEvent, files []domain.FileSelection) error {
	ev.PreventDefault()
	ev.StopPropagation()
	c.controls.Drop.SetActive(false)

	if len(files) == 0 {
		return nil
	}
	c.controls.File.Assign(files)
	return c.OnFileChosen(c.controls.File.Files())
}

func (c *UploadController) enterSubmitting() {
	c.state = domain.StateSubmitting
}

func (c *UploadController) showValidationError(err error) {
	verr, ok := domain.AsValidation(err)
	if !ok {
		c.controls.Alerts.ShowAlert(domain.ErrorAlert(domain.CategoryFault, domain.MsgUnexpectedFault))
		return
	}
	c.controls.Alerts.ShowAlert(domain.ErrorAlert(domain.CategoryValidation, verr.Message))
}
