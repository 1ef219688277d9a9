package docs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAPIEmbedded(t *testing.T) {
	assert.True(t, bytes.HasPrefix(OpenAPI, []byte("openapi: 3.")))
	for _, path := range []string{"/api/v1/pix/static", "/api/v1/charges/{id}/pix", "/api/v1/dashboard/stats"} {
		assert.Contains(t, string(OpenAPI), path)
	}
}
