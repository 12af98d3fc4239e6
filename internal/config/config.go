package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	SendGrid      SendGridConfig      `yaml:"sendgrid"`
	JWT           JWTConfig           `yaml:"jwt"`
	Log           LogConfig           `yaml:"log"`
	Billing       BillingConfig       `yaml:"billing"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	CORS          CORSConfig          `yaml:"cors"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BillingConfig contains fee settings
type BillingConfig struct {
	LateFeePerDayCents int64 `yaml:"late_fee_per_day_cents"`
}

// NotificationsConfig contains the reminder derivation windows. Pointer
// fields distinguish "absent, use the default" from an explicit zero, which
// is a valid window.
type NotificationsConfig struct {
	ReminderWindowDays *int  `yaml:"reminder_window_days"`
	PickupWindowDays   *int  `yaml:"pickup_window_days"`
	OverdueEnabled     *bool `yaml:"overdue_enabled"`
	HistoryCap         *int  `yaml:"history_cap"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ApplyLateFees         string `yaml:"apply_late_fees"`
	RefreshNotifications  string `yaml:"refresh_notifications"`
	SendUpcomingReminders string `yaml:"send_upcoming_reminders"`
	SendOverdueReminders  string `yaml:"send_overdue_reminders"`
}

// CORSConfig lists the web portals allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Billing
	if val := os.Getenv("LATE_FEE_PER_DAY_CENTS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Billing.LateFeePerDayCents)
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Billing defaults
	if c.Billing.LateFeePerDayCents == 0 {
		c.Billing.LateFeePerDayCents = 10000 // 100 currency units/day
	}
	if c.Billing.LateFeePerDayCents < 0 {
		return fmt.Errorf("late fee per day must not be negative")
	}

	// Notification defaults
	if c.Notifications.ReminderWindowDays == nil {
		days := 3
		c.Notifications.ReminderWindowDays = &days
	}
	if c.Notifications.PickupWindowDays == nil {
		days := 1
		c.Notifications.PickupWindowDays = &days
	}
	if c.Notifications.HistoryCap == nil {
		entries := 50
		c.Notifications.HistoryCap = &entries
	}
	if c.Notifications.OverdueEnabled == nil {
		enabled := true
		c.Notifications.OverdueEnabled = &enabled
	}
	if *c.Notifications.ReminderWindowDays < 0 || *c.Notifications.PickupWindowDays < 0 || *c.Notifications.HistoryCap < 0 {
		return fmt.Errorf("notification windows must not be negative")
	}

	// Scheduler defaults
	if c.Scheduler.ApplyLateFees == "" {
		c.Scheduler.ApplyLateFees = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.RefreshNotifications == "" {
		c.Scheduler.RefreshNotifications = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.SendUpcomingReminders == "" {
		c.Scheduler.SendUpcomingReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.SendOverdueReminders == "" {
		c.Scheduler.SendOverdueReminders = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
