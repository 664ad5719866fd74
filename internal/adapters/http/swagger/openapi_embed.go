package swagger

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
)

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

// OpenAPIJSON returns the embedded specification re-encoded as JSON, which
// is what Swagger UI and ReDoc load. The conversion runs once.
var OpenAPIJSON = sync.OnceValues(func() ([]byte, error) {
	doc, err := yaml.Parser().Unmarshal(OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("%w: parse openapi.yaml: %w", ErrServe, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode openapi.json: %w", ErrServe, err)
	}
	return out, nil
})
