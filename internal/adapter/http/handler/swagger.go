package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Swagger serves the OpenAPI document and a Swagger UI page for it.
type Swagger struct {
	spec []byte
}

// NewSwagger wraps spec, the raw OpenAPI YAML. A nil spec makes both
// routes answer 404.
func NewSwagger(spec []byte) *Swagger {
	return &Swagger{spec: spec}
}

// Spec serves the raw OpenAPI YAML.
func (s *Swagger) Spec(c *gin.Context) {
	if s.spec == nil {
		c.String(http.StatusNotFound, "OpenAPI spec not loaded")
		return
	}
	c.Data(http.StatusOK, "application/x-yaml", s.spec)
}

// UI serves a Swagger UI page that loads /swagger/spec.
func (s *Swagger) UI(c *gin.Context) {
	if s.spec == nil {
		c.String(http.StatusNotFound, "OpenAPI spec not loaded")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}

const swaggerPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="UTF-8">
  <title>PIX Credit Service - API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/swagger/spec',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
