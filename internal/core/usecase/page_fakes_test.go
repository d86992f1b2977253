package usecase

import (
	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

type fileInputFake struct {
	files   []domain.FileSelection
	cleared int
	focused bool
}

func (f *fileInputFake) Files() []domain.FileSelection { return f.files }
func (f *fileInputFake) Assign(files []domain.FileSelection) {
	f.files = append([]domain.FileSelection(nil), files...)
}
func (f *fileInputFake) Clear() {
	f.files = nil
	f.cleared++
}
func (f *fileInputFake) Focus() { f.focused = true }

type dropTargetFake struct {
	active  bool
	changes int
}

func (f *dropTargetFake) SetActive(active bool) {
	f.active = active
	f.changes++
}

type dragEventFake struct {
	prevented bool
	stopped   bool
}

func (e *dragEventFake) PreventDefault()  { e.prevented = true }
func (e *dragEventFake) StopPropagation() { e.stopped = true }

type previewFake struct {
	shown []domain.FilePreview
}

func (f *previewFake) ShowPreview(p domain.FilePreview) { f.shown = []domain.FilePreview{p} }
func (f *previewFake) RemovePreview()                   { f.shown = nil }

type alertsFake struct {
	alerts []domain.Alert
}

func (f *alertsFake) ShowAlert(a domain.Alert) {
	kept := f.alerts[:0]
	for _, existing := range f.alerts {
		if existing.Category != a.Category {
			kept = append(kept, existing)
		}
	}
	f.alerts = append(kept, a)
}

func (f *alertsFake) last() domain.Alert {
	if len(f.alerts) == 0 {
		return domain.Alert{}
	}
	return f.alerts[len(f.alerts)-1]
}

type valueFake struct {
	value   string
	focused bool
}

func (f *valueFake) Value() string { return f.value }
func (f *valueFake) Focus()        { f.focused = true }

type helpFake struct {
	band domain.Band
}

func (f *helpFake) SetBand(b domain.Band) { f.band = b }

type submitFake struct {
	busyLabel string
}

func (f *submitFake) SetBusy(label string) { f.busyLabel = label }

type statusFake struct {
	panels int
}

func (f *statusFake) InsertProcessingPanel() bool {
	if f.panels > 0 {
		return false
	}
	f.panels++
	return true
}

type effectsFake struct {
	accepted []domain.FileSelection
	started  int
}

func (f *effectsFake) FileAccepted(sel domain.FileSelection) { f.accepted = append(f.accepted, sel) }
func (f *effectsFake) SubmissionStarted()                    { f.started++ }

type pageFake struct {
	file          *fileInputFake
	drop          *dropTargetFake
	preview       *previewFake
	alerts        *alertsFake
	scale         *valueFake
	smoothing     *valueFake
	elevation     *valueFake
	submit        *submitFake
	status        *statusFake
	scaleHelp     *helpFake
	smoothingHelp *helpFake
	elevationHelp *helpFake
}

func newPageFake() *pageFake {
	return &pageFake{
		file:          &fileInputFake{},
		drop:          &dropTargetFake{},
		preview:       &previewFake{},
		alerts:        &alertsFake{},
		scale:         &valueFake{value: "1.0"},
		smoothing:     &valueFake{value: "3"},
		elevation:     &valueFake{value: "255"},
		submit:        &submitFake{},
		status:        &statusFake{},
		scaleHelp:     &helpFake{},
		smoothingHelp: &helpFake{},
		elevationHelp: &helpFake{},
	}
}

func (p *pageFake) controls() ports.UploadControls {
	return ports.UploadControls{
		File:          p.file,
		Drop:          p.drop,
		Preview:       p.preview,
		Alerts:        p.alerts,
		Scale:         p.scale,
		Smoothing:     p.smoothing,
		Elevation:     p.elevation,
		Submit:        p.submit,
		Status:        p.status,
		ScaleHelp:     p.scaleHelp,
		SmoothingHelp: p.smoothingHelp,
		ElevationHelp: p.elevationHelp,
	}
}
