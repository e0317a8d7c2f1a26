package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/token"
	"github.com/RoyceAzure/lab/shop/internal/util/validation"
	"github.com/RoyceAzure/rj/util/crypt"
	"github.com/RoyceAzure/rj/util/random"
	"golang.org/x/crypto/bcrypt"
)

var ErrReferralCodeExhausted = errors.New("could not generate a unique referral code")

// crypt.HashPassword 產生的是 bcrypt hash
func checkPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// newReferralCode 固定 ReferralCodeLength 碼, 字元限定在 ReferralCodeAlphabet
func newReferralCode() string {
	alphabet := constants.ReferralCodeAlphabet
	raw := strings.ToLower(random.RandomString(constants.ReferralCodeLength))
	code := make([]byte, constants.ReferralCodeLength)
	for i := range code {
		var b byte
		if i < len(raw) {
			b = raw[i]
		} else {
			b = byte(i)
		}
		if strings.IndexByte(alphabet, b) < 0 {
			b = alphabet[int(b)%len(alphabet)]
		}
		code[i] = b
	}
	return string(code)
}

type IUserService interface {
	Register(ctx context.Context, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	CreateUser(ctx context.Context, email, password string, isAdmin bool) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, username *string) (*model.User, error)
	ChangePassword(ctx context.Context, id uint, current, newPassword string) error
	DeleteAccount(ctx context.Context, id uint) error
	ListPointsHistory(ctx context.Context, id uint) ([]model.PointsTransaction, error)
}

type UserService struct {
	dbDao         db.IStore
	tokenMaker    token.Maker
	tokenDuration time.Duration
}

func NewUserService(dbDao db.IStore, tokenMaker token.Maker, tokenDuration time.Duration) *UserService {
	return &UserService{
		dbDao:         dbDao,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
	}
}

type credentials struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// Register 建立一般使用者並發放 access token
// 錯誤:
//   - 400: email 或 password 為空
//   - 409: email 已被使用
func (u *UserService) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if merr := validation.Struct(&credentials{Email: email, Password: password}); merr != nil {
		return nil, "", apperr.New(apperr.BadRequestCode, "email and password are required")
	}

	user, err := u.CreateUser(ctx, email, password, false)
	if err != nil {
		return nil, "", err
	}

	accessToken, _, err := u.tokenMaker.CreateToken(user.ID, u.tokenDuration)
	if err != nil {
		return nil, "", err
	}
	return user, accessToken, nil
}

func (u *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if merr := validation.Struct(&credentials{Email: email, Password: password}); merr != nil {
		return nil, "", apperr.New(apperr.BadRequestCode, "email and password are required")
	}

	user, err := u.dbDao.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, "", apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
		}
		return nil, "", err
	}
	if !checkPassword(password, user.PasswordHash) {
		return nil, "", apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
	}

	accessToken, _, err := u.tokenMaker.CreateToken(user.ID, u.tokenDuration)
	if err != nil {
		return nil, "", err
	}
	return user, accessToken, nil
}

// CreateUser 推薦碼最多嘗試 ReferralCodeMaxAttempts 次
// 錯誤:
//   - 409: email 已被使用
//   - ErrReferralCodeExhausted: 推薦碼重試次數用完
func (u *UserService) CreateUser(ctx context.Context, email, password string, isAdmin bool) (*model.User, error) {
	if _, err := u.dbDao.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.ConflictCode, "email already in use")
	} else if !db.IsNotFound(err) {
		return nil, err
	}

	hashed, err := crypt.HashPassword(password)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < constants.ReferralCodeMaxAttempts; attempt++ {
		code := newReferralCode()
		exists, err := u.dbDao.ReferralCodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		user := &model.User{
			Email:        email,
			PasswordHash: hashed,
			IsAdmin:      isAdmin,
			ReferralCode: code,
		}
		err = u.dbDao.CreateUser(ctx, user)
		if err == nil {
			return user, nil
		}
		if !db.IsUniqueViolation(err) {
			return nil, err
		}
		// email 被同時註冊, 或推薦碼剛好被搶走
		if _, lookupErr := u.dbDao.GetUserByEmail(ctx, email); lookupErr == nil {
			return nil, apperr.Wrap(apperr.ConflictCode, err, "email already in use")
		}
	}
	return nil, apperr.Wrap(apperr.InternalErrorCode, ErrReferralCodeExhausted)
}

func (u *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := u.dbDao.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

// UpdateProfile username 為 nil 時不變更
// 錯誤:
//   - 422: username 為空白
//   - 409: username 已被使用
func (u *UserService) UpdateProfile(ctx context.Context, id uint, username *string) (*model.User, error) {
	user, err := u.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if username == nil {
		return user, nil
	}

	name := strings.TrimSpace(*username)
	if name == "" {
		return nil, apperr.New(apperr.UnprocessableCode, "username cannot be empty")
	}

	if other, err := u.dbDao.GetUserByUsername(ctx, name); err == nil && other.ID != id {
		return nil, apperr.New(apperr.ConflictCode, "username already in use")
	} else if err != nil && !db.IsNotFound(err) {
		return nil, err
	}

	if err := u.dbDao.UpdateUserFields(ctx, id, map[string]any{"username": name}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, err, "username already in use")
		}
		return nil, err
	}
	user.Username = &name
	return user, nil
}

type changePasswordParams struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (u *UserService) ChangePassword(ctx context.Context, id uint, current, newPassword string) error {
	if merr := validation.Struct(&changePasswordParams{CurrentPassword: current, NewPassword: newPassword}); merr != nil {
		return badRequest(merr)
	}

	user, err := u.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !checkPassword(current, user.PasswordHash) {
		return apperr.New(apperr.BadRequestCode, "current password is incorrect")
	}

	hashed, err := crypt.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return u.dbDao.UpdateUserFields(ctx, id, map[string]any{"password": hashed})
}

func (u *UserService) DeleteAccount(ctx context.Context, id uint) error {
	if err := u.dbDao.DeleteUser(ctx, id); err != nil {
		return notFoundOr(err, "user not found")
	}
	return nil
}

func (u *UserService) ListPointsHistory(ctx context.Context, id uint) ([]model.PointsTransaction, error) {
	return u.dbDao.ListPointsTransactions(ctx, id)
}

var _ IUserService = (*UserService)(nil)
