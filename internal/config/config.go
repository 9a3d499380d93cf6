package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Every key can be set through the environment of the pod; a local .env
// file is honoured for development.

type Config struct {
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBMaxConns  int    `mapstructure:"DB_MAX_CONNS"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	IsLocalDev  bool   `mapstructure:"IS_LOCAL_DEV"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	AWSRegion               string `mapstructure:"AWS_REGION"`
	AWSEndpoint             string `mapstructure:"AWS_ENDPOINT"`
	NotificationSQSQueueURL string `mapstructure:"NOTIFICATION_SQS_QUEUE_URL"`
	PayrollSQSQueueURL      string `mapstructure:"PAYROLL_SQS_QUEUE_URL"`
	PayrollAPIURL           string `mapstructure:"PAYROLL_API_URL"`
	EmailSender             string `mapstructure:"EMAIL_SENDER"`
	WorkerConcurrency       int    `mapstructure:"WORKER_CONCURRENCY"`

	OTelExporterEndpoint string `mapstructure:"OTEL_EXPORTER_ENDPOINT"`
	CORSAllowedOrigin    string `mapstructure:"CORS_ALLOWED_ORIGIN"`

	ReservedEmails string `mapstructure:"RESERVED_EMAILS"`
	WeekendDays    string `mapstructure:"WEEKEND_DAYS"`
	Timezone       string `mapstructure:"TIMEZONE"`
}

// LoadConfig reads configuration from a .env file or environment variables.
func LoadConfig() (config Config, err error) {
	// A missing .env is the normal case outside of local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// Read in environment variables that match the keys.
	v.AutomaticEnv()

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}
	err = config.Validate()
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "hrms_db")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("IS_LOCAL_DEV", false)
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	v.SetDefault("NOTIFICATION_SQS_QUEUE_URL", "http://localstack:4566/000000000000/notification-queue")
	v.SetDefault("PAYROLL_SQS_QUEUE_URL", "http://localstack:4566/000000000000/payroll-queue")
	v.SetDefault("PAYROLL_API_URL", "http://localhost:8081/")
	v.SetDefault("EMAIL_SENDER", "no-reply@hrms.local")
	v.SetDefault("WORKER_CONCURRENCY", 10)
	v.SetDefault("OTEL_EXPORTER_ENDPOINT", "jaeger:4317")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	v.SetDefault("RESERVED_EMAILS", "admin@yourdomain.com,hr@yourdomain.com")
	v.SetDefault("WEEKEND_DAYS", "SATURDAY,SUNDAY")
	v.SetDefault("TIMEZONE", "Local")
}

// Validate checks the values that are parsed further by the application.
func (c Config) Validate() error {
	if _, err := c.Weekend(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.DBMaxConns < 0 {
		return fmt.Errorf("config: DB_MAX_CONNS must not be negative")
	}
	return nil
}

// DSN builds the postgres connection URL.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Reserved returns the lower-cased list of e-mail addresses that cannot self-register.
func (c Config) Reserved() []string {
	var out []string
	for _, e := range splitList(c.ReservedEmails) {
		out = append(out, strings.ToLower(e))
	}
	return out
}

var weekdays = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// Weekend parses WEEKEND_DAYS.
func (c Config) Weekend() ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range splitList(c.WeekendDays) {
		d, ok := weekdays[strings.ToUpper(name)]
		if !ok {
			return nil, fmt.Errorf("config: unknown weekday %q in WEEKEND_DAYS", name)
		}
		days = append(days, d)
	}
	return days, nil
}

// Location resolves TIMEZONE; "today" for attendance is computed in it.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE: %w", err)
	}
	return loc, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
