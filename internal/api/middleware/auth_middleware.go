package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/RoyceAzure/lab/shop/internal/util"
)

// 驗證ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetTokenPayloadFromContext(r.Context()) == nil {
			response.ErrorCode(w, apperr.UnauthenticatedCode, "missing or invalid access token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware 需放在 AuthMiddleware 之後, 每次都以資料庫中的 is_admin 為準
func AdminMiddleware(userService service.IUserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload := util.GetTokenPayloadFromContext(r.Context())
			if payload == nil {
				response.ErrorCode(w, apperr.UnauthenticatedCode, "missing or invalid access token")
				return
			}

			user, err := userService.GetUser(r.Context(), payload.UserID)
			if err != nil {
				if apperr.As(err).Code == apperr.NotFoundCode {
					response.ErrorCode(w, apperr.UnauthorizedCode, "admin access required")
					return
				}
				response.ErrorJSON(w, r, err)
				return
			}
			if !user.IsAdmin {
				response.ErrorCode(w, apperr.UnauthorizedCode, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
