package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/util"
	"github.com/rs/zerolog/log"
)

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Error().
					Str("request_id", util.GetRequestIDFromContext(r.Context())).
					Interface("panic", err).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.ErrorCode(w, apperr.InternalErrorCode)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
