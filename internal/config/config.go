package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host     string `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password string `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name     string `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode  string `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	MenuTTL    time.Duration `yaml:"MENU_TTL" env:"CACHE_MENU_TTL" env-default:"2m"`
	DefaultTTL time.Duration `yaml:"DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

// CartConfig carries the cart engine limits and the persisted
// snapshot policy.
type CartConfig struct {
	MaxItems        int           `yaml:"MAX_ITEMS" env:"CART_MAX_ITEMS" env-default:"50"`
	MaxLineQuantity int           `yaml:"MAX_LINE_QUANTITY" env:"CART_MAX_LINE_QUANTITY" env-default:"99"`
	SnapshotMaxAge  time.Duration `yaml:"SNAPSHOT_MAX_AGE" env:"CART_SNAPSHOT_MAX_AGE" env-default:"4h"`
}

type CouponConfig struct {
	DailyDeviceLimit int    `yaml:"DAILY_DEVICE_LIMIT" env:"COUPON_DAILY_DEVICE_LIMIT" env-default:"5"`
	CodePrefix       string `yaml:"CODE_PREFIX" env:"COUPON_CODE_PREFIX" env-default:"LUMI-"`
}

type FeedbackConfig struct {
	RatingThreshold int    `yaml:"RATING_THRESHOLD" env:"FEEDBACK_RATING_THRESHOLD" env-default:"4"`
	AlertEmail      string `yaml:"ALERT_EMAIL" env:"FEEDBACK_ALERT_EMAIL" env-default:""`
}

type Chat struct {
	APIKey  string `yaml:"CHAT_API_KEY" env:"CHAT_API_KEY" env-default:""`
	BaseURL string `yaml:"CHAT_BASE_URL" env:"CHAT_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model   string `yaml:"CHAT_MODEL" env:"CHAT_MODEL" env-default:"gpt-4o-mini"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"alerts@lumieats.example"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"LumiEats"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database       `yaml:"database"`
	RedisConnect RedisConnect   `yaml:"redis"`
	Cache        CacheConfig    `yaml:"cache"`
	Cart         CartConfig     `yaml:"cart"`
	Coupon       CouponConfig   `yaml:"coupon"`
	Feedback     FeedbackConfig `yaml:"feedback"`
	Chat         Chat           `yaml:"chat"`
	SendGrid     SendGrid       `yaml:"sendgrid"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
