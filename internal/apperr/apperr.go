package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-multierror"
)

type Code int

const (
	BadRequestCode      Code = http.StatusBadRequest
	UnauthenticatedCode Code = http.StatusUnauthorized
	UnauthorizedCode    Code = http.StatusForbidden
	NotFoundCode        Code = http.StatusNotFound
	ConflictCode        Code = http.StatusConflict
	UnprocessableCode   Code = http.StatusUnprocessableEntity
	InternalErrorCode   Code = http.StatusInternalServerError
)

var ErrStrMap = map[Code]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	UnauthorizedCode:    "access denied",
	NotFoundCode:        "not found",
	ConflictCode:        "conflict",
	UnprocessableCode:   "unprocessable entity",
	InternalErrorCode:   "internal server error",
}

// AppError 帶有http對應碼與可直接回給client的訊息
type AppError struct {
	Code     Code
	Messages []string
	Err      error
}

func (e *AppError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同code視為同一種錯誤, 方便 errors.Is(err, apperr.ErrNotFound)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && len(t.Messages) == 0
}

func New(code Code, msgs ...string) *AppError {
	if len(msgs) == 0 {
		msgs = []string{ErrStrMap[code]}
	}
	return &AppError{Code: code, Messages: msgs}
}

func Wrap(code Code, err error, msgs ...string) *AppError {
	e := New(code, msgs...)
	e.Err = err
	return e
}

// FromValidation 將累積的驗證錯誤轉成單一 AppError, 沒有錯誤時回傳 nil
func FromValidation(code Code, merr *multierror.Error) error {
	if merr == nil || len(merr.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(merr.Errors))
	for _, err := range merr.Errors {
		msgs = append(msgs, err.Error())
	}
	return &AppError{Code: code, Messages: msgs}
}

// As 取出 AppError, 不是 AppError 則包成 internal error
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(InternalErrorCode, err)
}

var (
	ErrBadRequest      = &AppError{Code: BadRequestCode}
	ErrUnauthenticated = &AppError{Code: UnauthenticatedCode}
	ErrUnauthorized    = &AppError{Code: UnauthorizedCode}
	ErrNotFound        = &AppError{Code: NotFoundCode}
	ErrConflict        = &AppError{Code: ConflictCode}
	ErrUnprocessable   = &AppError{Code: UnprocessableCode}
)
