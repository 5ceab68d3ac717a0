package serve

import (
	"context"
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/da11an/repo-query-surface/internal/errors"
)

//go:embed openapi.json
var openapiDoc []byte

// loadSpec parses and validates the embedded API document. An invalid
// document fails server construction.
func loadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiDoc)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeServeInit, "load embedded openapi document")
	}
	if doc == nil {
		return nil, errors.New(errors.CodeServeInit, "embedded openapi document resolved to nil")
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CodeServeInit, "validate embedded openapi document")
	}
	return doc, nil
}
