package service

import (
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/hashicorp/go-multierror"
)

// notFoundOr gorm.ErrRecordNotFound 轉成 404, 其他錯誤原樣回傳
func notFoundOr(err error, msg string) error {
	if db.IsNotFound(err) {
		return apperr.Wrap(apperr.NotFoundCode, err, msg)
	}
	return err
}

func badRequest(merr *multierror.Error) error {
	return apperr.FromValidation(apperr.BadRequestCode, merr)
}
