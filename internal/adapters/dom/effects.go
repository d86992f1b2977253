//go:build js && wasm

package dom

import (
	"log/slog"
	"syscall/js"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

// effectsGlobal is the optional window object of the decorative layer.
const effectsGlobal = "demEffects"

// Effects forwards notifications to window.demEffects when a page installs
// it. Return values are ignored and faults stay inside the call.
type Effects struct{}

func (Effects) FileAccepted(sel domain.FileSelection) {
	notify("fileAccepted", sel.Name, float64(sel.SizeBytes))
}

func (Effects) SubmissionStarted() {
	notify("submissionStarted")
}

func notify(method string, args ...any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("effects_failed", "method", method, "panic", r)
		}
	}()
	target := js.Global().Get(effectsGlobal)
	if !present(target) || target.Get(method).Type() != js.TypeFunction {
		return
	}
	target.Call(method, args...)
}
