package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения, переопределяющие секреты из файла
const (
	envDBPassword    = "DB_PASSWORD"
	envAssistantKey  = "ASSISTANT_API_KEY"
	envTelegramToken = "TELEGRAM_BOT_TOKEN"
	envAdminToken    = "ADMIN_TOKEN"
	envNotifierChat  = "NOTIFIER_CHAT_ID"
)

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Shop      ShopConfig      `toml:"shop"`
	Assistant AssistantConfig `toml:"assistant"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Sweeper   SweeperConfig   `toml:"sweeper"`
	Admin     AdminConfig     `toml:"admin"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ShopConfig параметры барбершопа
type ShopConfig struct {
	Name         string `toml:"name"`
	Timezone     string `toml:"timezone"`
	OpenHour     int    `toml:"open_hour"`
	CloseHour    int    `toml:"close_hour"`
	HorizonDays  int    `toml:"horizon_days"`
	ContactInfo  string `toml:"contact_info"`
	HaircutPrice int    `toml:"haircut_price"`
	BeardPrice   int    `toml:"beard_price"`
}

// Hours рабочие часы магазина
func (s ShopConfig) Hours() domain.BusinessHours {
	return domain.BusinessHours{OpenHour: s.OpenHour, CloseHour: s.CloseHour}
}

// AssistantConfig настройки fallback-ассистента
type AssistantConfig struct {
	Enabled        bool    `toml:"enabled"`
	URL            string  `toml:"url"`
	APIKey         string  `toml:"api_key"`
	Model          string  `toml:"model"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
}

// Timeout таймаут запроса к ассистенту
func (a AssistantConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// NotifierConfig настройки уведомлений оператора
type NotifierConfig struct {
	Enabled        bool   `toml:"enabled"`
	APIURL         string `toml:"api_url"`
	BotToken       string `toml:"bot_token"`
	ChatID         int64  `toml:"chat_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	QueueSize      int    `toml:"queue_size"`
}

// Timeout таймаут одной отправки
func (n NotifierConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// SweeperConfig настройки ночной очистки
type SweeperConfig struct {
	Schedule       string `toml:"schedule"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout таймаут одного прогона очистки
func (s SweeperConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// AdminConfig доступ к служебным маршрутам
type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает TOML файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 30)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 10)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barberbot"
	}

	if c.Shop.Name == "" {
		c.Shop.Name = domain.DefaultShopName
	}
	if c.Shop.Timezone == "" {
		c.Shop.Timezone = domain.DefaultTimezone
	}
	if c.Shop.OpenHour == 0 && c.Shop.CloseHour == 0 {
		c.Shop.OpenHour = domain.DefaultOpenHour
		c.Shop.CloseHour = domain.DefaultCloseHour
	}
	setDefault(&c.Shop.HorizonDays, domain.DefaultHorizonDays)

	setDefault(&c.Assistant.TimeoutSeconds, 10)
	if c.Assistant.Model == "" {
		c.Assistant.Model = "llama-3.3-70b-versatile"
	}

	setDefault(&c.Notifier.TimeoutSeconds, 5)
	setDefault(&c.Notifier.QueueSize, 64)

	if c.Sweeper.Schedule == "" {
		c.Sweeper.Schedule = "12 3 * * *"
	}
	setDefault(&c.Sweeper.TimeoutSeconds, 60)
}

func (c *Config) applyEnv() error {
	overrideFromEnv(&c.Database.Password, envDBPassword)
	overrideFromEnv(&c.Assistant.APIKey, envAssistantKey)
	overrideFromEnv(&c.Notifier.BotToken, envTelegramToken)
	overrideFromEnv(&c.Admin.Token, envAdminToken)

	var chatID string
	overrideFromEnv(&chatID, envNotifierChat)
	if chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a chat id", ErrInvalidConfig, envNotifierChat, chatID)
		}
		c.Notifier.ChatID = id
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Shop.Timezone); err != nil {
		return fmt.Errorf("%w: shop.timezone %q: %v", ErrInvalidConfig, c.Shop.Timezone, err)
	}
	if !c.Shop.Hours().IsValid() {
		return fmt.Errorf("%w: shop hours %d-%d", ErrInvalidConfig, c.Shop.OpenHour, c.Shop.CloseHour)
	}
	if c.Shop.HorizonDays <= 0 {
		return fmt.Errorf("%w: shop.horizon_days must be positive", ErrInvalidConfig)
	}
	if c.Shop.HaircutPrice < 0 || c.Shop.BeardPrice < 0 {
		return fmt.Errorf("%w: shop prices must not be negative", ErrInvalidConfig)
	}
	if c.Assistant.Enabled && (c.Assistant.URL == "" || c.Assistant.APIKey == "") {
		return fmt.Errorf("%w: assistant.url and assistant.api_key are required when the assistant is enabled", ErrInvalidConfig)
	}
	if c.Notifier.Enabled && (c.Notifier.BotToken == "" || c.Notifier.ChatID == 0) {
		return fmt.Errorf("%w: notifier.bot_token and notifier.chat_id are required when the notifier is enabled", ErrInvalidConfig)
	}
	if _, err := cron.ParseStandard(c.Sweeper.Schedule); err != nil {
		return fmt.Errorf("%w: sweeper.schedule %q: %v", ErrInvalidConfig, c.Sweeper.Schedule, err)
	}
	if c.Admin.Token == "" {
		return fmt.Errorf("%w: admin.token is required", ErrInvalidConfig)
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func overrideFromEnv(v *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*v = strings.TrimSpace(value)
	}
}
