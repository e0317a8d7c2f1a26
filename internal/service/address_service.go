package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/util/validation"
)

type AddressParams struct {
	Street     string `json:"street" validate:"notblank"`
	City       string `json:"city" validate:"notblank"`
	PostalCode string `json:"postal_code" validate:"notblank"`
	Country    string `json:"country" validate:"notblank"`
}

func (p *AddressParams) normalize() {
	p.Street = strings.TrimSpace(p.Street)
	p.City = strings.TrimSpace(p.City)
	p.PostalCode = strings.TrimSpace(p.PostalCode)
	p.Country = strings.TrimSpace(p.Country)
}

type IAddressService interface {
	ListAddresses(ctx context.Context, userID uint) ([]model.UserAddress, error)
	CreateAddress(ctx context.Context, userID uint, arg AddressParams) (*model.UserAddress, error)
	UpdateAddress(ctx context.Context, userID, id uint, arg AddressParams) (*model.UserAddress, error)
	DeleteAddress(ctx context.Context, userID, id uint) error
}

type AddressService struct {
	dbDao db.IStore
}

func NewAddressService(dbDao db.IStore) *AddressService {
	return &AddressService{dbDao: dbDao}
}

func (s *AddressService) ListAddresses(ctx context.Context, userID uint) ([]model.UserAddress, error) {
	return s.dbDao.ListAddressesByUser(ctx, userID)
}

func (s *AddressService) CreateAddress(ctx context.Context, userID uint, arg AddressParams) (*model.UserAddress, error) {
	arg.normalize()
	if merr := validation.Struct(&arg); merr != nil {
		return nil, badRequest(merr)
	}

	address := &model.UserAddress{
		UserID:     userID,
		Street:     arg.Street,
		City:       arg.City,
		PostalCode: arg.PostalCode,
		Country:    arg.Country,
	}
	if err := s.dbDao.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress 其他使用者的地址視為不存在
func (s *AddressService) UpdateAddress(ctx context.Context, userID, id uint, arg AddressParams) (*model.UserAddress, error) {
	address, err := s.dbDao.GetUserAddress(ctx, userID, id)
	if err != nil {
		return nil, notFoundOr(err, "address not found")
	}

	arg.normalize()
	if merr := validation.Struct(&arg); merr != nil {
		return nil, badRequest(merr)
	}

	address.Street = arg.Street
	address.City = arg.City
	address.PostalCode = arg.PostalCode
	address.Country = arg.Country
	if err := s.dbDao.UpdateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, userID, id uint) error {
	if err := s.dbDao.DeleteUserAddress(ctx, userID, id); err != nil {
		return notFoundOr(err, "address not found")
	}
	return nil
}

var _ IAddressService = (*AddressService)(nil)
