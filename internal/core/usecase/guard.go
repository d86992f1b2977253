package usecase

import (
	"fmt"
	"log/slog"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

// NopEffects is used when no decorative layer is installed.
type NopEffects struct{}

func (NopEffects) FileAccepted(domain.FileSelection) {}
func (NopEffects) SubmissionStarted()                {}

// Guard runs an event handler and turns a panic into the generic advisory
// alert instead of letting it escape into the host.
func Guard(alerts ports.AlertSurface, event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			ReportFault(alerts, event, fmt.Errorf("panic: %v", r))
		}
	}()
	fn()
}

// ReportFault surfaces an unexpected fault. It is a best-effort safety net.
func ReportFault(alerts ports.AlertSurface, event string, err error) {
	slog.Error("page_fault", "event", event, "error", err)
	if alerts == nil {
		return
	}
	alerts.ShowAlert(domain.ErrorAlert(domain.CategoryFault, domain.MsgUnexpectedFault))
}
