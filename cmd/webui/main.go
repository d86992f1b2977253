//go:build js && wasm

// Command webui drives the upload page in the browser.
// Build with: GOOS=js GOARCH=wasm go build -o $STATIC_DIR/webui.wasm ./cmd/webui
package main

import (
	"log/slog"

	"github.com/kirillkom/planetary-dem/internal/adapters/dom"
	"github.com/kirillkom/planetary-dem/internal/observability/logging"
)

func main() {
	slog.SetDefault(logging.NewJSONLogger("webui", "info"))

	if _, err := dom.BindUploadPage(dom.Current()); err != nil {
		slog.Info("webui_not_bound", "error", err)
		return
	}
	slog.Info("webui_bound")

	// Keep the Go runtime alive for the page's event handlers.
	select {}
}
