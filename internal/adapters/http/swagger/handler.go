// Package swagger serves the OpenAPI document and the two interactive
// documentation pages built on it.
package swagger

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/coinrng/internal/adapters/http/middleware"
	"github.com/okian/coinrng/pkg/logger"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
)

// Documentation routes.
const (
	DocsPath        = "/docs"
	RedocPath       = "/redocs"
	OpenAPIJSONPath = "/openapi.json"
	OpenAPIYAMLPath = "/openapi.yaml"
)

// Register attaches the documentation routes to mux.
// Routes:
//
//	GET /docs          -> Swagger UI HTML
//	GET /redocs        -> ReDoc HTML
//	GET /openapi.json  -> OpenAPI spec as JSON
//	GET /openapi.yaml  -> Embedded OpenAPI spec
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET "+DocsPath, middleware.Metrics(htmlPage(swaggerUIHTML), "docs"))
	mux.HandleFunc("GET "+RedocPath, middleware.Metrics(htmlPage(redocHTML), "redocs"))

	mux.HandleFunc("GET "+OpenAPIJSONPath, middleware.Metrics(func(w http.ResponseWriter, r *http.Request) {
		body, err := OpenAPIJSON()
		if err != nil {
			ctx := r.Context()
			logger.FromContext(ctx).Error(ctx, "openapi conversion failed", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}, "openapi_json"))

	mux.HandleFunc("GET "+OpenAPIYAMLPath, middleware.Metrics(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	}, "openapi_yaml"))
}

func htmlPage(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}
}

// Swagger UI page loading /openapi.json from the CDN bundle.
const swaggerUIHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>coinrng - Swagger UI</title>
    <link type="text/css" rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      const ui = SwaggerUIBundle({
        url: '` + OpenAPIJSONPath + `',
        dom_id: '#swagger-ui',
        layout: 'BaseLayout',
        deepLinking: true,
        showExtensions: true,
        showCommonExtensions: true,
        presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      })
    </script>
  </body>
</html>`

// Minimal HTML that uses ReDoc and loads /openapi.json.
const redocHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>coinrng - ReDoc</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container" spec-url="` + OpenAPIJSONPath + `"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
  </body>
</html>`
