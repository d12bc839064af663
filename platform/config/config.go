// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetAPIKey() string
}

// MailConfig provides settings for the IMAP order-mail monitor.
type MailConfig interface {
	GetIMAPHost() string
	GetIMAPPort() int
	GetIMAPUser() string
	GetIMAPPassword() string
	GetIMAPFolder() string
	GetMailFromFilters() []string
	GetMailCheckInterval() time.Duration
	IsMailEnabled() bool
}

// SchedulerConfig provides settings for the asynq scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// WhatsAppConfig provides settings for the Green-API WhatsApp channel.
type WhatsAppConfig interface {
	GetGreenAPIInstanceID() string
	GetGreenAPIToken() string
	IsWhatsAppEnabled() bool
}

// SMSConfig provides settings for the SMS gateway channel.
type SMSConfig interface {
	GetSMSGatewayAPIKey() string
	IsSMSEnabled() bool
}

// NotifyConfig provides settings for the notification dispatcher.
type NotifyConfig interface {
	GetNotificationTemplate() string
	GetIgnoredPhones() []string
	GetSendInterval() time.Duration
	GetDedupeTTL() time.Duration
}

// AlertConfig provides settings for administrator alert emails.
type AlertConfig interface {
	GetAlertSMTPHost() string
	GetAlertSMTPPort() int
	GetAlertSMTPUser() string
	GetAlertSMTPPassword() string
	GetAlertFromAddress() string
	GetAlertAdminAddress() string
	IsAlertEnabled() bool
}

// ArchiveConfig provides settings for the MinIO inbound-mail archive.
type ArchiveConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMailArchiveBucket() string
	IsArchiveEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env      string
	HTTPAddr string
	APIKey   string

	DatabaseURL string

	RedisURL         string
	AsynqQueueName   string
	AsynqConcurrency int

	CORSAllowAll bool
	CORSOrigins  []string

	IMAPHost          string
	IMAPPort          int
	IMAPUser          string
	IMAPPassword      string
	IMAPFolder        string
	MailFromFilters   []string
	MailCheckInterval time.Duration

	GreenAPIInstanceID string
	GreenAPIToken      string
	SMSGatewayAPIKey   string

	NotificationTemplate string
	IgnoredPhones        []string
	SendInterval         time.Duration
	DedupeTTL            time.Duration

	AlertSMTPHost     string
	AlertSMTPPort     int
	AlertSMTPUser     string
	AlertSMTPPassword string
	AlertFromAddress  string
	AlertAdminAddress string

	MinIOEndpoint     string
	MinIOAccessKey    string
	MinIOSecretKey    string
	MinIOUseSSL       bool
	MailArchiveBucket string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetAPIKey() string        { return c.APIKey }

// MailConfig implementation
func (c *Config) GetIMAPHost() string                 { return c.IMAPHost }
func (c *Config) GetIMAPPort() int                    { return c.IMAPPort }
func (c *Config) GetIMAPUser() string                 { return c.IMAPUser }
func (c *Config) GetIMAPPassword() string             { return c.IMAPPassword }
func (c *Config) GetIMAPFolder() string               { return c.IMAPFolder }
func (c *Config) GetMailFromFilters() []string        { return c.MailFromFilters }
func (c *Config) GetMailCheckInterval() time.Duration { return c.MailCheckInterval }
func (c *Config) IsMailEnabled() bool {
	return c.IMAPHost != "" && c.IMAPUser != "" && c.IMAPPassword != ""
}

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// WhatsAppConfig implementation
func (c *Config) GetGreenAPIInstanceID() string { return c.GreenAPIInstanceID }
func (c *Config) GetGreenAPIToken() string      { return c.GreenAPIToken }
func (c *Config) IsWhatsAppEnabled() bool {
	return c.GreenAPIInstanceID != "" && c.GreenAPIToken != ""
}

// SMSConfig implementation
func (c *Config) GetSMSGatewayAPIKey() string { return c.SMSGatewayAPIKey }
func (c *Config) IsSMSEnabled() bool          { return c.SMSGatewayAPIKey != "" }

// NotifyConfig implementation
func (c *Config) GetNotificationTemplate() string { return c.NotificationTemplate }
func (c *Config) GetIgnoredPhones() []string      { return c.IgnoredPhones }
func (c *Config) GetSendInterval() time.Duration  { return c.SendInterval }
func (c *Config) GetDedupeTTL() time.Duration     { return c.DedupeTTL }

// AlertConfig implementation
func (c *Config) GetAlertSMTPHost() string     { return c.AlertSMTPHost }
func (c *Config) GetAlertSMTPPort() int        { return c.AlertSMTPPort }
func (c *Config) GetAlertSMTPUser() string     { return c.AlertSMTPUser }
func (c *Config) GetAlertSMTPPassword() string { return c.AlertSMTPPassword }
func (c *Config) GetAlertFromAddress() string  { return c.AlertFromAddress }
func (c *Config) GetAlertAdminAddress() string { return c.AlertAdminAddress }
func (c *Config) IsAlertEnabled() bool {
	return c.AlertSMTPHost != "" && c.AlertAdminAddress != ""
}

// ArchiveConfig implementation
func (c *Config) GetMinIOEndpoint() string     { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string    { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string    { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool         { return c.MinIOUseSSL }
func (c *Config) GetMailArchiveBucket() string { return c.MailArchiveBucket }
func (c *Config) IsArchiveEnabled() bool       { return c.MinIOEndpoint != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		APIKey:   getEnv("API_KEY", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:         getEnv("REDIS_URL", ""),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),

		CORSAllowAll: strings.EqualFold(getEnv("CORS_ALLOW_ALL", "true"), "true"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "")),

		IMAPHost:          getEnv("EMAIL_HOST", "imap.gmail.com"),
		IMAPPort:          mustInt(getEnv("EMAIL_PORT", "993")),
		IMAPUser:          getEnv("EMAIL_USER", ""),
		IMAPPassword:      getEnv("EMAIL_PASSWORD", ""),
		IMAPFolder:        getEnv("EMAIL_FOLDER", "INBOX"),
		MailFromFilters:   splitCSV(getEnv("EMAIL_FROM_FILTER", "")),
		MailCheckInterval: mustDuration(getEnv("EMAIL_CHECK_INTERVAL", "5m")),

		GreenAPIInstanceID: getEnv("GREENAPI_INSTANCE_ID", ""),
		GreenAPIToken:      getEnv("GREENAPI_TOKEN", ""),
		SMSGatewayAPIKey:   getEnv("SMSGATEWAY_API_KEY", ""),

		NotificationTemplate: getEnv("NOTIFICATION_MESSAGE", "Ваш заказ №{order_number} готов к выдаче!"),
		IgnoredPhones:        splitCSV(getEnv("IGNORE_PHONES", "")),
		SendInterval:         mustDuration(getEnv("SEND_INTERVAL", "2s")),
		DedupeTTL:            mustDuration(getEnv("NOTIFY_DEDUPE_TTL", "24h")),

		AlertSMTPHost:     getEnv("ALERT_SMTP_HOST", ""),
		AlertSMTPPort:     mustInt(getEnv("ALERT_SMTP_PORT", "587")),
		AlertSMTPUser:     getEnv("ALERT_SMTP_USER", ""),
		AlertSMTPPassword: getEnv("ALERT_SMTP_PASSWORD", ""),
		AlertFromAddress:  getEnv("ALERT_FROM_ADDRESS", ""),
		AlertAdminAddress: getEnv("ALERT_ADMIN_ADDRESS", ""),

		MinIOEndpoint:     getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:    getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:    getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:       strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MailArchiveBucket: getEnv("MINIO_BUCKET_MAIL_ARCHIVE", "mail-archive"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.MailCheckInterval < time.Minute {
		cfg.MailCheckInterval = time.Minute
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
