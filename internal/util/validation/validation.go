package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var (
	cardNumberRegex = regexp.MustCompile(`^(\d\s?){16}$`)
	expiryRegex     = regexp.MustCompile(`^\d{2}/\d{4}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 錯誤訊息使用 json 欄位名稱
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return expiryRegex.MatchString(fl.Field().String())
	})
	return v
}

// Struct 依 validate tag 檢查, 回傳累積的錯誤, 沒有錯誤時回傳 nil
func Struct(s any) *multierror.Error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return multierror.Append(merr, err)
	}
	for _, fe := range verrs {
		merr = multierror.Append(merr, errors.New(message(fe)))
	}
	return merr
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "cardnumber":
		return "Invalid card number format"
	case "expiry":
		return "Invalid expiry date format (MM/YYYY)"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
