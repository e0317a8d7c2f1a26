package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀寫  需要使用讀寫鎖
*/
var configSingleton *ConfigSingleTon
var muonce sync.Once

const defaultConfigFile = ".env"

type ConfigSingleTon struct {
	Config *Config
	viper  *viper.Viper
	mu     sync.RWMutex
}

type Config struct {
	Env                 string `mapstructure:"ENV"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
	ServerPort          string `mapstructure:"SERVER_PORT"`
	DbName              string `mapstructure:"POSTGRES_DB"`
	DbHost              string `mapstructure:"POSTGRES_HOST"`
	DbPort              string `mapstructure:"POSTGRES_PORT"`
	DbUser              string `mapstructure:"POSTGRES_USER"`
	DbPas               string `mapstructure:"POSTGRES_PASSWORD"`
	DbMigrateMode       string `mapstructure:"DB_MIGRATE_MODE"`
	JwtSecretKey        string `mapstructure:"JWT_SECRET_KEY"`
	AccessTokenHours    int    `mapstructure:"ACCESS_TOKEN_HOURS"`
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int    `mapstructure:"REDIS_DB"`
	CheckoutLockSeconds int    `mapstructure:"CHECKOUT_LOCK_SECONDS"`
	KafkaBrokers        string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic     string `mapstructure:"KAFKA_ORDER_TOPIC"`
	MediaRoot           string `mapstructure:"MEDIA_ROOT"`
	MediaURL            string `mapstructure:"MEDIA_URL"`
	StaticDir           string `mapstructure:"STATIC_DIR"`
	SeedFile            string `mapstructure:"SEED_FILE"`
	CorsOrigins         string `mapstructure:"CORS_ORIGINS"`
}

// DbMigrateMode
const (
	MigrateModeSQL  = "sql"
	MigrateModeAuto = "auto"
	MigrateModeNone = "none"
)

func (c *Config) KafkaBrokerList() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) CorsOriginList() []string {
	return splitList(c.CorsOrigins)
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muonce.Do(func() {
		configSingleton = &ConfigSingleTon{viper: viper.New()}
		path := os.Getenv("SHOP_CONFIG_FILE")
		if path == "" {
			path = defaultConfigFile
		}
		cf, err := loadConfig(configSingleton.viper, path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("error read config")
		}
		configSingleton.Config = cf

		if configSingleton.viper.ConfigFileUsed() == "" {
			return
		}
		configSingleton.viper.OnConfigChange(func(e fsnotify.Event) {
			cf, err := loadConfig(configSingleton.viper, path)
			if err != nil {
				log.Error().Err(err).Str("file", e.Name).Msg("failed to reload config file")
				return
			}
			configSingleton.mu.Lock()
			configSingleton.Config = cf
			configSingleton.mu.Unlock()
			log.Info().Str("file", e.Name).Msg("config reloaded")
		})
		configSingleton.viper.WatchConfig()
	})
}

// LoadConfig 讀取指定檔案 檔案不存在時只使用預設值與環境變數
func LoadConfig(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

/*
單純回傳錯誤  由外部決定要不要Fatal, 畢竟有可能有替代方案
*/
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}

// AutomaticEnv 只會覆蓋viper已知的key 所以每個key都要有預設值
func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", string("development"))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("POSTGRES_DB", "shop")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("DB_MIGRATE_MODE", MigrateModeSQL)
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("ACCESS_TOKEN_HOURS", 24)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CHECKOUT_LOCK_SECONDS", 30)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ORDER_TOPIC", "shop.orders")
	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("MEDIA_URL", "/media")
	v.SetDefault("STATIC_DIR", "frontend/dist")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("CORS_ORIGINS", "*")
}
