package httpadapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

func loadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi: document does not contain any paths")
	}
	return doc, nil
}

func (rt *Router) openAPIDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("X-API-Version", rt.api.Info.Version)
	_, _ = w.Write(openAPISpec)
}
