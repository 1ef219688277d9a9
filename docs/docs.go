// Package docs carries the API description served at /swagger.
package docs

import _ "embed"

// OpenAPI is the OpenAPI 3 document for the HTTP API.
//
//go:embed api/openapi.yaml
var OpenAPI []byte
