package httpadapter

import "embed"

//go:embed static
var staticAssets embed.FS

//go:embed openapi.yaml
var openAPISpec []byte
