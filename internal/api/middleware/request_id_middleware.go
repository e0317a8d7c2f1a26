package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//從header內檢查是否有request id
		requestId := r.Header.Get(requestIDHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, requestId)

		ctx := context.WithValue(r.Context(), constants.RequestIDKey, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
