package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress       string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn        string        `mapstructure:"POSTGRES_CONN"`
	MigrationURL        string        `mapstructure:"MIGRATION_URL"`
	RedisURL            string        `mapstructure:"REDIS_URL"`
	PNCPAPIBase         string        `mapstructure:"PNCP_API_BASE"`
	PNCPConsultaAPIBase string        `mapstructure:"PNCP_CONSULTA_API_BASE"`
	PNCPWebBase         string        `mapstructure:"PNCP_WEB_BASE"`
	RequestTimeout      time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	HandlerTimeout      time.Duration `mapstructure:"HANDLER_TIMEOUT"`
	CacheTTL            time.Duration `mapstructure:"CACHE_TTL"`
	WarmupSchedule      string        `mapstructure:"WARMUP_SCHEDULE"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":         "0.0.0.0:8080",
	"POSTGRES_CONN":          "",
	"MIGRATION_URL":          "file://db/migration",
	"REDIS_URL":              "",
	"PNCP_API_BASE":          "https://pncp.gov.br/api/pncp",
	"PNCP_CONSULTA_API_BASE": "https://pncp.gov.br/api/consulta",
	"PNCP_WEB_BASE":          "https://pncp.gov.br",
	"REQUEST_TIMEOUT":        "30s",
	"HANDLER_TIMEOUT":        "35s",
	"CACHE_TTL":              "10m",
	"WARMUP_SCHEDULE":        "@every 10m",
	"LOG_LEVEL":              "info",
}

// LoadConfig загружает конфигурацию из файла app.env и переменных окружения.
// Отсутствие файла не ошибка: у всех ключей есть значения по умолчанию.
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}
	err = v.Unmarshal(&cfg)
	return
}
