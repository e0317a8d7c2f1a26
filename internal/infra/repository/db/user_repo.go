package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*model.User, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	UpdateUserFields(ctx context.Context, id uint, updates map[string]any) error
	DeductUserPoints(ctx context.Context, id uint, version int, amount int) (bool, error)
	AddUserPoints(ctx context.Context, id uint, amount int) error
	DeleteUser(ctx context.Context, id uint) error
}

type UserRepo struct {
	dbDao *DbDao
}

func NewUserRepo(dbDao *DbDao) *UserRepo {
	return &UserRepo{dbDao: dbDao}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return r.dbDao.WithContext(ctx).Create(user).Error
}

func (r *UserRepo) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.dbDao.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.dbDao.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.dbDao.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := r.dbDao.WithContext(ctx).Where("referral_code = ?", code).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.dbDao.WithContext(ctx).Model(&model.User{}).Where("referral_code = ?", code).Count(&count).Error
	return count > 0, err
}

// Update - 部分更新用戶
func (r *UserRepo) UpdateUserFields(ctx context.Context, id uint, updates map[string]any) error {
	return r.dbDao.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}

// DeductUserPoints 以 points_version 做 CAS, 版本不符時回傳 false
func (r *UserRepo) DeductUserPoints(ctx context.Context, id uint, version int, amount int) (bool, error) {
	result := r.dbDao.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND points_version = ?", id, version).
		Updates(map[string]any{
			"points_balance": gorm.Expr("points_balance - ?", amount),
			"points_version": gorm.Expr("points_version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *UserRepo) AddUserPoints(ctx context.Context, id uint, amount int) error {
	return r.dbDao.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"points_balance": gorm.Expr("points_balance + ?", amount),
			"points_version": gorm.Expr("points_version + 1"),
		}).Error
}

// DeleteUser 連同使用者擁有的資料一起刪除, 被推薦的訂單只清掉 referrer
func (r *UserRepo) DeleteUser(ctx context.Context, id uint) error {
	return r.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&model.Order{}).Where("user_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", orderIDs).Delete(&model.Order{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Order{}).Where("referrer_id = ?", id).Update("referrer_id", nil).Error; err != nil {
			return err
		}
		for _, m := range []any{&model.CartItem{}, &model.Review{}, &model.UserAddress{}, &model.UserCard{}, &model.PointsTransaction{}} {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
