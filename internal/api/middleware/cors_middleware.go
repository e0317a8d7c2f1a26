package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CorsMiddleware origins 為空時允許所有來源
func CorsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: origins[0] != "*",
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		MaxAge:           300,
	})
}
