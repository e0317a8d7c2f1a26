package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type IAddressRepository interface {
	ListAddressesByUser(ctx context.Context, userID uint) ([]model.UserAddress, error)
	GetUserAddress(ctx context.Context, userID, id uint) (*model.UserAddress, error)
	CreateAddress(ctx context.Context, address *model.UserAddress) error
	UpdateAddress(ctx context.Context, address *model.UserAddress) error
	DeleteUserAddress(ctx context.Context, userID, id uint) error
}

type AddressRepo struct {
	dbDao *DbDao
}

func NewAddressRepo(dbDao *DbDao) *AddressRepo {
	return &AddressRepo{dbDao: dbDao}
}

func (r *AddressRepo) ListAddressesByUser(ctx context.Context, userID uint) ([]model.UserAddress, error) {
	var addresses []model.UserAddress
	err := r.dbDao.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&addresses).Error
	return addresses, err
}

// GetUserAddress 只會找到屬於該使用者的地址
func (r *AddressRepo) GetUserAddress(ctx context.Context, userID, id uint) (*model.UserAddress, error) {
	var address model.UserAddress
	err := r.dbDao.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepo) CreateAddress(ctx context.Context, address *model.UserAddress) error {
	return r.dbDao.WithContext(ctx).Omit("User").Create(address).Error
}

func (r *AddressRepo) UpdateAddress(ctx context.Context, address *model.UserAddress) error {
	return r.dbDao.WithContext(ctx).Model(&model.UserAddress{}).
		Where("id = ? AND user_id = ?", address.ID, address.UserID).
		Updates(map[string]any{
			"street":      address.Street,
			"city":        address.City,
			"postal_code": address.PostalCode,
			"country":     address.Country,
		}).Error
}

func (r *AddressRepo) DeleteUserAddress(ctx context.Context, userID, id uint) error {
	result := r.dbDao.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.UserAddress{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
