package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Booking   BookingConfig
	Generator GeneratorConfig
	Reminder  ReminderConfig
	Notify    NotifyConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	MigrationsPath string
}

type SessionConfig struct {
	ExpiryHours int
}

type BookingConfig struct {
	// Minutes before slot start that a QR scan is accepted
	VerifyWindowMinutes int
}

type GeneratorConfig struct {
	HorizonDays     int
	StartHour       int
	EndHour         int
	DefaultCapacity int
	IntervalHours   int
}

type ReminderConfig struct {
	IntervalMinutes    int
	WindowStartMinutes int
	WindowEndMinutes   int
}

type NotifyConfig struct {
	Workers   int
	QueueSize int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("VERIFY_WINDOW_MINUTES", 30)
	viper.SetDefault("GENERATOR_HORIZON_DAYS", 30)
	viper.SetDefault("GENERATOR_START_HOUR", 8)
	viper.SetDefault("GENERATOR_END_HOUR", 17)
	viper.SetDefault("GENERATOR_DEFAULT_CAPACITY", 30)
	viper.SetDefault("GENERATOR_INTERVAL_HOURS", 24)
	viper.SetDefault("REMINDER_INTERVAL_MINUTES", 15)
	viper.SetDefault("REMINDER_WINDOW_START_MINUTES", 45)
	viper.SetDefault("REMINDER_WINDOW_END_MINUTES", 75)
	viper.SetDefault("NOTIFY_WORKERS", 2)
	viper.SetDefault("NOTIFY_QUEUE_SIZE", 256)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			VerifyWindowMinutes: viper.GetInt("VERIFY_WINDOW_MINUTES"),
		},
		Generator: GeneratorConfig{
			HorizonDays:     viper.GetInt("GENERATOR_HORIZON_DAYS"),
			StartHour:       viper.GetInt("GENERATOR_START_HOUR"),
			EndHour:         viper.GetInt("GENERATOR_END_HOUR"),
			DefaultCapacity: viper.GetInt("GENERATOR_DEFAULT_CAPACITY"),
			IntervalHours:   viper.GetInt("GENERATOR_INTERVAL_HOURS"),
		},
		Reminder: ReminderConfig{
			IntervalMinutes:    viper.GetInt("REMINDER_INTERVAL_MINUTES"),
			WindowStartMinutes: viper.GetInt("REMINDER_WINDOW_START_MINUTES"),
			WindowEndMinutes:   viper.GetInt("REMINDER_WINDOW_END_MINUTES"),
		},
		Notify: NotifyConfig{
			Workers:   viper.GetInt("NOTIFY_WORKERS"),
			QueueSize: viper.GetInt("NOTIFY_QUEUE_SIZE"),
		},
	}

	return config, nil
}
