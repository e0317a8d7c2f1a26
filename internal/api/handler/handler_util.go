package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/util"
	"github.com/go-chi/chi/v5"
)

// decodeJSON 空的body視為空物件
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	response.ErrorCode(w, apperr.BadRequestCode, "invalid request body")
	return false
}

// currentUserID 需搭配 AuthMiddleware
func currentUserID(r *http.Request) uint {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return 0
	}
	return payload.UserID
}

func urlParamID(w http.ResponseWriter, r *http.Request, key string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, key), 10, 64)
	if err != nil || id == 0 {
		response.ErrorCode(w, apperr.NotFoundCode)
		return 0, false
	}
	return uint(id), true
}

// queryInt 無法解析時回傳預設值
func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}

func queryUint(r *http.Request, key string) *uint {
	v, err := strconv.ParseUint(r.URL.Query().Get(key), 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	id := uint(v)
	return &id
}
