package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/rs/zerolog/log"
)

// SeedService 寫入初始分類與管理員, 重複執行不會產生重複資料
type SeedService struct {
	dbDao       db.IStore
	userService IUserService
}

func NewSeedService(dbDao db.IStore, userService IUserService) *SeedService {
	return &SeedService{dbDao: dbDao, userService: userService}
}

func (s *SeedService) Seed(ctx context.Context, seed *config.SeedConfig) error {
	if seed == nil {
		return nil
	}
	if err := s.seedCategories(ctx, seed.Categories); err != nil {
		return err
	}
	return s.seedAdmins(ctx, seed.Admins)
}

func (s *SeedService) seedCategories(ctx context.Context, categories []config.SeedCategory) error {
	for _, c := range categories {
		name, slug := strings.TrimSpace(c.Name), strings.TrimSpace(c.Slug)
		if name == "" || slug == "" {
			log.Warn().Msgf("skip seed category with empty name or slug: %q", c.Name)
			continue
		}
		taken, err := s.dbDao.CategoryNameOrSlugTaken(ctx, name, slug, 0)
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		err = s.dbDao.CreateCategory(ctx, &model.Category{
			Name:        name,
			Slug:        slug,
			Description: strings.TrimSpace(c.Description),
		})
		if err != nil {
			return err
		}
		log.Info().Str("slug", slug).Msg("seeded category")
	}
	return nil
}

// seedAdmins 已存在的使用者直接提升為管理員
func (s *SeedService) seedAdmins(ctx context.Context, admins []config.SeedAdmin) error {
	for _, a := range admins {
		email := strings.TrimSpace(a.Email)
		if email == "" || a.Password == "" {
			log.Warn().Msg("skip seed admin with empty email or password")
			continue
		}

		user, err := s.dbDao.GetUserByEmail(ctx, email)
		if err != nil && !db.IsNotFound(err) {
			return err
		}
		if user == nil {
			user, err = s.userService.CreateUser(ctx, email, a.Password, true)
			if err != nil {
				return err
			}
			log.Info().Str("email", email).Msg("seeded admin")
		} else if !user.IsAdmin {
			if err := s.dbDao.UpdateUserFields(ctx, user.ID, map[string]any{"is_admin": true}); err != nil {
				return err
			}
			log.Info().Str("email", email).Msg("promoted user to admin")
		}

		if username := strings.TrimSpace(a.Username); username != "" && user.Username == nil {
			if _, err := s.userService.UpdateProfile(ctx, user.ID, &username); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("failed to set admin username")
			}
		}
	}
	return nil
}
