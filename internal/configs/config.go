package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/inbackru/v35-sub000/internal/constants"
)

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL string
}

// DBconfig хранит конфигурацию для БД
type DBconfig struct {
	URL string
}

// FeedConfig хранит конфигурацию источника фида объявлений.
type FeedConfig struct {
	Mode string // http или sheets

	Name string
	URL  string // для http-фида

	SpreadsheetID   string // для фида из Google-таблицы
	ReadRange       string
	CredentialsPath string
}

// CatalogTuning – настройки каталога, зависящие от окружения.
type CatalogTuning struct {
	ConfigPath  string        // путь до catalog.yaml
	SnapshotTTL time.Duration // TTL снапшота рабочего набора
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	Database DBconfig
	RabbitMQ RabbitMQConfig
	Feed     FeedConfig
	Catalog  CatalogTuning
}

// LoadConfig загружает конфигурацию из переменных окружения.
// .env опционален: в бою переменные приходят из окружения процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	cfg.Feed.Mode = getEnvAsString("FEED_MODE", constants.FeedModeHTTP)
	cfg.Feed.Name = getEnvAsString("FEED_NAME", constants.DefaultFeedName)
	cfg.Feed.URL = os.Getenv("FEED_URL")
	cfg.Feed.SpreadsheetID = os.Getenv("FEED_SPREADSHEET_ID")
	cfg.Feed.ReadRange = getEnvAsString("FEED_READ_RANGE", "A:S")
	cfg.Feed.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_FILE")

	switch cfg.Feed.Mode {
	case constants.FeedModeHTTP:
		if cfg.Feed.URL == "" {
			return nil, fmt.Errorf("FEED_URL environment variable is required for http feed mode")
		}
	case constants.FeedModeSheets:
		if cfg.Feed.SpreadsheetID == "" {
			return nil, fmt.Errorf("FEED_SPREADSHEET_ID environment variable is required for sheets feed mode")
		}
	default:
		return nil, fmt.Errorf("unknown FEED_MODE '%s' (expected %s or %s)",
			cfg.Feed.Mode, constants.FeedModeHTTP, constants.FeedModeSheets)
	}

	cfg.Catalog.ConfigPath = getEnvAsString("CATALOG_CONFIG", "catalog.yaml")
	cfg.Catalog.SnapshotTTL = time.Duration(getEnvAsInt("CATALOG_SNAPSHOT_TTL_SECONDS", 300)) * time.Second

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}
