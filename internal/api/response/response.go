package response

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/util"
	"github.com/rs/zerolog/log"
)

type ErrorBody struct {
	Errors []string `json:"errors"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func SuccessJSON(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func CreatedJSON(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageBody{Message: msg})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ErrorJSON AppError 依其 code 回應, 其餘錯誤一律 500 且不外洩細節
func ErrorJSON(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.As(err)
	if appErr.Code == apperr.InternalErrorCode {
		log.Error().
			Err(err).
			Str("request_id", util.GetRequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("internal error")
		JSON(w, int(apperr.InternalErrorCode), ErrorBody{Errors: []string{apperr.ErrStrMap[apperr.InternalErrorCode]}})
		return
	}
	JSON(w, int(appErr.Code), ErrorBody{Errors: appErr.Messages})
}

func ErrorCode(w http.ResponseWriter, code apperr.Code, msgs ...string) {
	if len(msgs) == 0 {
		msgs = []string{apperr.ErrStrMap[code]}
	}
	JSON(w, int(code), ErrorBody{Errors: msgs})
}
