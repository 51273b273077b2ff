package api

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets browsers on origins call the read-only API. A "*" entry, or an
// empty list, allows any origin.
func CORS(h http.Handler, origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(h)
}
