package config

import "time"

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // console | json
	File       string `mapstructure:"file"`   // пусто - только stdout
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// ConfigAPI настройки клиента API заметок
type ConfigAPI struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // секунды
}

// RequestTimeout возвращает таймаут запроса к API
func (c *ConfigAPI) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ConfigServer настройки локального fake API сервера
type ConfigServer struct {
	PortHTTP                int `mapstructure:"port_http"`
	HTTPReadTimeout         int `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки middleware fake API
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	API     *ConfigAPI     `mapstructure:"api"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
}

// Defaults значения по умолчанию для ключей конфигурации
func Defaults() map[string]any {
	return map[string]any{
		"logger.level":        "info",
		"logger.format":       "console",
		"logger.max_size_mb":  10,
		"logger.max_backups":  3,
		"logger.max_age_days": 14,

		"api.base_url": "http://localhost:3333",
		"api.timeout":  10,

		"server.port_http":                 3333,
		"server.http_read_timeout":         15,
		"server.http_write_timeout":        15,
		"server.http_idle_timeout":         60,
		"server.http_read_header_timeout":  5,
		"server.graceful_shutdown_timeout": 10,

		"gateway.cors_allowed_origins": "*",
		"gateway.cors_max_age":         86400,
		"gateway.rate_limit_rps":       100,
		"gateway.rate_limit_burst":     10,
	}
}
