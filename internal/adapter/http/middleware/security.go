package middleware

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/unrolled/secure"
)

// WrapHTTP puts the CORS and security-header handlers in front of h.
// In development mode HSTS and SSL checks are skipped.
func WrapHTTP(h http.Handler, allowedOrigins []string, isDevelopment bool) http.Handler {
	sec := secure.New(secure.Options{
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "no-referrer",
		IsDevelopment:        isDevelopment,
	})

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodHead, http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
	})

	return c.Handler(sec.Handler(h))
}
