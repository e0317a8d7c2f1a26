package appcontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/RoyceAzure/lab/rj_redis/pkg/redis_client"
	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/handler"
	"github.com/RoyceAzure/lab/shop/internal/api/router"
	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shop/internal/infra/storage"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/RoyceAzure/lab/shop/internal/token"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf             *config.Config
	Logger         *zerolog.Logger
	DbConn         *gorm.DB
	DbDao          *db.Store
	RedisClient    *redis.Client
	TokenMaker     token.Maker
	CheckoutLocker redis_repo.ICheckoutLocker
	EventProducer  producer.IOrderEventProducer
	ImageStorage   storage.IImageStorage

	UserService     service.IUserService
	AddressService  service.IAddressService
	CardService     service.ICardService
	CategoryService service.ICategoryService
	ProductService  service.IProductService
	CartService     service.ICartService
	OrderService    service.IOrderService
	ReviewService   service.IReviewService
	SeedService     *service.SeedService

	Router http.Handler
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		// 初始化到一半失敗 已建立的連線也要釋放
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Shutdown(shutdownCtx)
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []func() error{
		app.setUpLogger,
		app.setUpdbConn,
		app.setUpdbMigration,
		app.setUpdbDao,
		app.setTokenMaker,
		app.setUpCheckoutLocker,
		app.setUpEventProducer,
		app.setUpImageStorage,
		app.setUpServices,
		app.dbSeed,
		app.setUpRouter,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (app *ApplicationContext) setUpLogger() error {
	level, err := zerolog.ParseLevel(app.Cf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if app.Cf.Env == "development" || app.Cf.Env == "debug" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	log.Logger = logger
	app.Logger = &logger
	log.Info().Str("env", app.Cf.Env).Str("level", level.String()).Msg("logger ready")
	return nil
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Info().Msg("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	app.DbConn = conn
	log.Info().Msg("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbMigration() error {
	log.Info().Str("mode", app.Cf.DbMigrateMode).Msg("Start db migration")
	switch app.Cf.DbMigrateMode {
	case config.MigrateModeSQL:
		dbURL := db.PostgresURL(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
		if err := db.RunDBMigration(dbURL); err != nil {
			return fmt.Errorf("run db migration: %w", err)
		}
	case config.MigrateModeAuto:
		if err := db.NewDbDao(app.DbConn).InitMigrate(); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	case config.MigrateModeNone:
	default:
		return fmt.Errorf("unknown DB_MIGRATE_MODE %q", app.Cf.DbMigrateMode)
	}
	log.Info().Msg("Finish db migration")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	app.DbDao = db.NewStore(app.DbConn)
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	tokenMaker, err := token.NewJWTMaker(app.Cf.JwtSecretKey)
	if err != nil {
		return fmt.Errorf("create token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	return nil
}

// 沒有設定 REDIS_ADDR 時不做跨實例的結帳鎖
func (app *ApplicationContext) setUpCheckoutLocker() error {
	if app.Cf.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, checkout lock disabled")
		app.CheckoutLocker = redis_repo.NoopCheckoutLocker{}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := redis_repo.NewRedisClient(ctx, app.Cf.RedisAddr,
		redis_client.WithPassword(app.Cf.RedisPassword),
		redis_repo.WithDB(app.Cf.RedisDB),
	)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	app.RedisClient = client
	ttl := time.Duration(app.Cf.CheckoutLockSeconds) * time.Second
	app.CheckoutLocker = redis_repo.NewCheckoutLocker(client, ttl)
	log.Info().Str("addr", app.Cf.RedisAddr).Dur("ttl", ttl).Msg("checkout lock ready")
	return nil
}

func (app *ApplicationContext) setUpEventProducer() error {
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Warn().Msg("KAFKA_BROKERS not set, order events disabled")
		app.EventProducer = producer.NoopOrderEventProducer{}
		return nil
	}

	p, err := producer.NewKafkaProducer(producer.Config{
		Brokers:       brokers,
		Topic:         app.Cf.KafkaOrderTopic,
		RetryAttempts: 3,
	}, app.Logger)
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	app.EventProducer = producer.NewOrderEventProducer(p)
	log.Info().Strs("brokers", brokers).Str("topic", app.Cf.KafkaOrderTopic).Msg("order event producer ready")
	return nil
}

func (app *ApplicationContext) setUpImageStorage() error {
	if err := os.MkdirAll(app.Cf.MediaRoot, 0o755); err != nil {
		return fmt.Errorf("create media root: %w", err)
	}
	app.ImageStorage = storage.NewOsImageStorage(app.Cf.MediaRoot, app.Cf.MediaURL)
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	tokenDuration := time.Duration(app.Cf.AccessTokenHours) * time.Hour
	app.UserService = service.NewUserService(app.DbDao, app.TokenMaker, tokenDuration)
	app.AddressService = service.NewAddressService(app.DbDao)
	app.CardService = service.NewCardService(app.DbDao)
	app.CategoryService = service.NewCategoryService(app.DbDao)
	app.ProductService = service.NewProductService(app.DbDao, app.ImageStorage)
	app.CartService = service.NewCartService(app.DbDao)
	app.OrderService = service.NewOrderService(app.DbDao, app.CheckoutLocker, app.EventProducer, app.Logger)
	app.ReviewService = service.NewReviewService(app.DbDao)
	app.SeedService = service.NewSeedService(app.DbDao, app.UserService)
	return nil
}

// 初始分類與管理員
func (app *ApplicationContext) dbSeed() error {
	if app.Cf.SeedFile == "" {
		return nil
	}
	log.Info().Str("file", app.Cf.SeedFile).Msg("Start db seed")
	seed, err := config.LoadSeedConfig(app.Cf.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}
	if err := app.SeedService.Seed(context.Background(), seed); err != nil {
		return fmt.Errorf("seed db: %w", err)
	}
	log.Info().Msg("Finish db seed")
	return nil
}

func (app *ApplicationContext) setUpRouter() error {
	mediaURL := app.Cf.MediaURL
	server := api.NewServer(
		handler.NewAuthHandler(app.UserService),
		handler.NewCategoryHandler(app.CategoryService),
		handler.NewProductHandler(app.ProductService, mediaURL),
		handler.NewCartHandler(app.CartService, mediaURL),
		handler.NewOrderHandler(app.OrderService),
		handler.NewReviewHandler(app.ReviewService),
		handler.NewUserHandler(app.UserService, app.AddressService, app.CardService, app.OrderService),
		handler.NewAdminHandler(app.ProductService, app.OrderService, app.CategoryService, mediaURL),
		handler.NewHealthHandler(app.ping),
	)

	opts := router.Options{
		CorsOrigins: app.Cf.CorsOriginList(),
		MediaURL:    mediaURL,
		MediaFs:     app.ImageStorage.FileSystem(),
	}
	if info, err := os.Stat(app.Cf.StaticDir); err == nil && info.IsDir() {
		opts.StaticFs = afero.NewBasePathFs(afero.NewOsFs(), app.Cf.StaticDir)
	} else {
		log.Warn().Str("dir", app.Cf.StaticDir).Msg("static dir not found, frontend disabled")
	}

	app.Router = router.SetupRouter(server, app.TokenMaker, app.UserService, app.Logger, opts)
	return nil
}

func (app *ApplicationContext) ping(ctx context.Context) error {
	sqlDB, err := app.DbConn.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if app.RedisClient != nil {
		return app.RedisClient.Ping(ctx).Err()
	}
	return nil
}

// Shutdown 各資源平行關閉, 任一失敗不影響其他資源
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Info().Msg("Start application shutdown")

	var g errgroup.Group
	if app.EventProducer != nil {
		g.Go(func() error {
			if err := app.EventProducer.Close(); err != nil {
				return fmt.Errorf("close event producer: %w", err)
			}
			return nil
		})
	}
	if app.RedisClient != nil {
		g.Go(func() error {
			if err := app.RedisClient.Close(); err != nil {
				return fmt.Errorf("close redis: %w", err)
			}
			return nil
		})
	}
	if app.DbConn != nil {
		g.Go(func() error {
			sqlDB, err := app.DbConn.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.Close(); err != nil {
				return fmt.Errorf("close database: %w", err)
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("application shutdown error")
			return err
		}
		log.Info().Msg("Application shutdown complete")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
