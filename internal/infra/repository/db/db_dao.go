package db

import (
	"context"
	"errors"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.UserAddress{},
		&model.UserCard{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.PointsTransaction{},
	)
}

type IStore interface {
	IUserRepository
	IAddressRepository
	ICardRepository
	ICategoryRepository
	IProductRepository
	ICartRepository
	IOrderRepository
	IReviewRepository
	IPointsRepository

	InitMigrate() error
	// ExecTx 在同一個交易中執行 fn, fn 回傳錯誤時整個交易 rollback
	ExecTx(ctx context.Context, fn func(IStore) error) error
}

// Store 組合所有 repo, 交易中會以 tx 重新建立一份
type Store struct {
	dbDao *DbDao
	*UserRepo
	*AddressRepo
	*CardRepo
	*CategoryRepo
	*ProductRepo
	*CartRepo
	*OrderRepo
	*ReviewRepo
	*PointsRepo
}

func NewStore(conn *gorm.DB) *Store {
	dbDao := NewDbDao(conn)
	return &Store{
		dbDao:        dbDao,
		UserRepo:     NewUserRepo(dbDao),
		AddressRepo:  NewAddressRepo(dbDao),
		CardRepo:     NewCardRepo(dbDao),
		CategoryRepo: NewCategoryRepo(dbDao),
		ProductRepo:  NewProductRepo(dbDao),
		CartRepo:     NewCartRepo(dbDao),
		OrderRepo:    NewOrderRepo(dbDao),
		ReviewRepo:   NewReviewRepo(dbDao),
		PointsRepo:   NewPointsRepo(dbDao),
	}
}

func (s *Store) InitMigrate() error {
	return s.dbDao.InitMigrate()
}

func (s *Store) ExecTx(ctx context.Context, fn func(IStore) error) error {
	return s.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Close 關閉底層連線池
func (s *Store) Close() error {
	sqlDB, err := s.dbDao.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsUniqueViolation 需搭配 gorm.Config{TranslateError: true}
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

var _ IStore = (*Store)(nil)
