package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/util/validation"
)

type CardParams struct {
	CardNumber string `json:"card_number" validate:"cardnumber"`
	Expiry     string `json:"expiry" validate:"expiry"`
}

type ICardService interface {
	ListCards(ctx context.Context, userID uint) ([]model.UserCard, error)
	AddCard(ctx context.Context, userID uint, arg CardParams) (*model.UserCard, error)
	DeleteCard(ctx context.Context, userID, id uint) error
}

type CardService struct {
	dbDao db.IStore
}

func NewCardService(dbDao db.IStore) *CardService {
	return &CardService{dbDao: dbDao}
}

func (s *CardService) ListCards(ctx context.Context, userID uint) ([]model.UserCard, error) {
	return s.dbDao.ListCardsByUser(ctx, userID)
}

// AddCard 卡號只保存數字
func (s *CardService) AddCard(ctx context.Context, userID uint, arg CardParams) (*model.UserCard, error) {
	if merr := validation.Struct(&arg); merr != nil {
		return nil, badRequest(merr)
	}

	card := &model.UserCard{
		UserID:     userID,
		CardNumber: strings.Join(strings.Fields(arg.CardNumber), ""),
		Expiry:     arg.Expiry,
	}
	if err := s.dbDao.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) DeleteCard(ctx context.Context, userID, id uint) error {
	if err := s.dbDao.DeleteUserCard(ctx, userID, id); err != nil {
		return notFoundOr(err, "card not found")
	}
	return nil
}

var _ ICardService = (*CardService)(nil)
