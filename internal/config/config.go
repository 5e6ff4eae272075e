package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Pricing     PricingConfig
	AuthService ServiceConfig
	Storage     StorageConfig
	Log         LogConfig
	Features    FeatureFlags
}

// ServerConfig carries the HTTP listener settings. There is no write
// timeout: the SSE stream endpoints hold their connections open.
type ServerConfig struct {
	Port        int
	ReadTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	OrdersTopic   string
	ConsumerGroup string
}

// PricingConfig holds the fixed pricing rules. DeliveryFee is a flat
// amount independent of cart contents; TaxRate applies to the subtotal.
type PricingConfig struct {
	DeliveryFee float64
	TaxRate     float64
}

type ServiceConfig struct {
	BaseURL string
	Timeout time.Duration
	APIKey  string
}

// StorageConfig locates the local product-image store.
type StorageConfig struct {
	ImageDir string
}

type LogConfig struct {
	Level  string
	Format string
}

type FeatureFlags struct {
	EnableOrderEvents  bool
	EnableOrderStreams bool
	ValidateCustomers  bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnvInt("SERVER_PORT", 8080),
			ReadTimeout: time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "coffeehub"),
			Password:     getEnvString("DB_PASSWORD", "coffeehub"),
			Name:         getEnvString("DB_NAME", "coffeehub_storefront"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 30)) * time.Minute,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:       []string{getEnvString("KAFKA_BROKERS", "localhost:9092")},
			OrdersTopic:   getEnvString("KAFKA_ORDERS_TOPIC", "storefront.orders"),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "storefront-service"),
		},
		Pricing: PricingConfig{
			DeliveryFee: getEnvFloat("PRICING_DELIVERY_FEE", 10000),
			TaxRate:     getEnvFloat("PRICING_TAX_RATE", 0.10),
		},
		AuthService: ServiceConfig{
			BaseURL: getEnvString("AUTH_SERVICE_URL", "http://localhost:8081"),
			Timeout: time.Duration(getEnvInt("AUTH_SERVICE_TIMEOUT", 10)) * time.Second,
			APIKey:  getEnvString("AUTH_SERVICE_API_KEY", ""),
		},
		Storage: StorageConfig{
			ImageDir: getEnvString("IMAGE_DIR", "data/product-images"),
		},
		Log: LogConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Features: FeatureFlags{
			EnableOrderEvents:  getEnvBool("ENABLE_ORDER_EVENTS", true),
			EnableOrderStreams: getEnvBool("ENABLE_ORDER_STREAMS", true),
			ValidateCustomers:  getEnvBool("VALIDATE_CUSTOMERS", true),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
