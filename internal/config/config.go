package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/jwalitptl/arogyavax/pkg/messaging/redis"
)

// EnvPrefix is the prefix of every environment override, e.g. AROGYAVAX_DATABASE_HOST.
const EnvPrefix = "AROGYAVAX"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Hospital  HospitalConfig  `mapstructure:"hospital"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	StaticDir string          `mapstructure:"static_dir" split_words:"true"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" split_words:"true"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" split_words:"true"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" split_words:"true"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" split_words:"true"`
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpiryHours int    `mapstructure:"expiry_hours" split_words:"true"`
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type AuthConfig struct {
	BcryptCost int           `mapstructure:"bcrypt_cost" split_words:"true"`
	OTPTTL     time.Duration `mapstructure:"otp_ttl" envconfig:"OTP_TTL"`
	// ExposeOTP echoes generated OTPs in the send-otp response. Demo setups only.
	ExposeOTP      bool                 `mapstructure:"expose_otp" envconfig:"EXPOSE_OTP"`
	BootstrapAdmin BootstrapAdminConfig `mapstructure:"bootstrap_admin" split_words:"true"`
}

type BootstrapAdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries" split_words:"true"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" split_words:"true"`
	PoolSize     int           `mapstructure:"pool_size" split_words:"true"`
	MinIdleConns int           `mapstructure:"min_idle_conns" split_words:"true"`
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" }

type MinIOConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key" split_words:"true"`
	SecretKey     string        `mapstructure:"secret_key" split_words:"true"`
	Bucket        string        `mapstructure:"bucket"`
	UseSSL        bool          `mapstructure:"use_ssl" envconfig:"USE_SSL"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry" split_words:"true"`
}

func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name" split_words:"true"`
	SampleRatio float64 `mapstructure:"sample_ratio" split_words:"true"`
	Insecure    bool    `mapstructure:"insecure"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" split_words:"true"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" split_words:"true"`
}

// HospitalConfig names the hospital used when a request omits one.
type HospitalConfig struct {
	DefaultName     string `mapstructure:"default_name" split_words:"true"`
	DefaultLocation string `mapstructure:"default_location" split_words:"true"`
}

type CacheConfig struct {
	CatalogueTTL time.Duration `mapstructure:"catalogue_ttl" split_words:"true"`
}

type WorkerConfig struct {
	ReminderInterval     time.Duration `mapstructure:"reminder_interval" split_words:"true"`
	AuditCleanupInterval time.Duration `mapstructure:"audit_cleanup_interval" split_words:"true"`
	AuditRetentionDays   int           `mapstructure:"audit_retention_days" split_words:"true"`
	MetricsPort          int           `mapstructure:"metrics_port" split_words:"true"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.request_timeout", "30s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "arogyavax")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")

	v.SetDefault("jwt.issuer", "arogyavax")
	v.SetDefault("jwt.expiry_hours", 24)

	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.otp_ttl", "5m")
	v.SetDefault("auth.bootstrap_admin.name", "Admin")

	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", "100ms")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "no-reply@arogyavax.local")

	v.SetDefault("minio.bucket", "certificates")
	v.SetDefault("minio.presign_expiry", "15m")

	v.SetDefault("tracing.service_name", "arogyavax-api")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("log.level", "info")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("hospital.default_name", "City General")
	v.SetDefault("hospital.default_location", "Downtown")

	v.SetDefault("cache.catalogue_ttl", "10m")

	v.SetDefault("worker.reminder_interval", "1h")
	v.SetDefault("worker.audit_cleanup_interval", "24h")
	v.SetDefault("worker.audit_retention_days", 90)
	v.SetDefault("worker.metrics_port", 9091)

	v.SetDefault("static_dir", "./public")
}

// LoadConfig reads config.yml from the given directories (or "." and "./config"),
// loads a .env file when present and applies AROGYAVAX_* environment overrides.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Auth.BootstrapAdmin.Email != "" && c.Auth.BootstrapAdmin.Password == "" {
		return errors.New("auth.bootstrap_admin.password is required when an email is set")
	}
	return nil
}
