//go:build js && wasm

package dom

import (
	"strconv"
	"syscall/js"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

// Alerts prepends dismissible banners to the page container and removes
// each one after domain.AlertTTL.
type Alerts struct {
	doc Document
}

func NewAlerts(doc Document) *Alerts {
	return &Alerts{doc: doc}
}

func (a *Alerts) ShowAlert(alert domain.Alert) {
	container := a.doc.query("div.container")
	if !present(container) {
		return
	}
	for _, el := range a.doc.queryAll(`.alert[data-category="` + string(alert.Category) + `"]`) {
		el.Call("remove")
	}

	variant := "alert-success"
	if alert.Severity == domain.SeverityError {
		variant = "alert-danger"
	}
	banner := a.doc.create("div",
		"class", "alert "+variant+" alert-dismissible fade show",
		"role", "alert",
		"data-category", string(alert.Category),
		"data-expires-in", strconv.FormatInt(domain.AlertTTL.Milliseconds(), 10),
	)
	banner.Call("append",
		a.doc.text(alert.Message),
		a.doc.create("button", "type", "button", "class", "btn-close", "data-bs-dismiss", "alert", "aria-label", "Close"),
	)
	container.Call("prepend", banner)

	var expire js.Func
	expire = js.FuncOf(func(js.Value, []js.Value) any {
		defer expire.Release()
		if banner.Get("isConnected").Bool() {
			banner.Call("remove")
		}
		return nil
	})
	js.Global().Call("setTimeout", expire, domain.AlertTTL.Milliseconds())
}
