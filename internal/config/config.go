package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Upload    UploadConfig
	Log       LogConfig
	CORS      CORSConfig
	OCR       OCRConfig
	Layout    LayoutConfig
	Reconcile ReconcileConfig
	RateLimit RateLimitConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for uploaded images.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// UploadConfig holds image upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCRConfig holds recognition engine settings.
type OCRConfig struct {
	Language       string `mapstructure:"language"`
	PageSegMode    int    `mapstructure:"page_seg_mode"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
}

// LayoutConfig holds the layout reconstruction tuning knobs.
type LayoutConfig struct {
	BandHeight    int   `mapstructure:"band_height"`
	PixelsPerChar int   `mapstructure:"pixels_per_char"`
	CharAdvancePx int   `mapstructure:"char_advance_px"`
	ColumnWidths  []int `mapstructure:"column_widths"`
	TabWidth      int   `mapstructure:"tab_width"`
}

// ReconcileConfig controls the stale processing record monitor.
type ReconcileConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	StaleAfter time.Duration `mapstructure:"stale_after"`
}

// RateLimitConfig throttles the unauthenticated auth endpoints per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// Load reads configuration from environment variables with the OCRDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OCRDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ocrdesk")
	v.SetDefault("db.password", "ocrdesk_secret")
	v.SetDefault("db.name", "ocrdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 5)
	v.SetDefault("db.max_idle", 2)
	v.SetDefault("db.max_idle_time", "10s")
	v.SetDefault("db.connect_timeout", "30s")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "168h")
	v.SetDefault("jwt.refresh_expiry", "720h")
	v.SetDefault("jwt.issuer", "ocrdesk")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "ocrdesk-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	v.SetDefault("upload.max_file_size_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// OCR defaults
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.page_seg_mode", 3)
	v.SetDefault("ocr.tessdata_prefix", "")

	// Layout defaults
	v.SetDefault("layout.band_height", 10)
	v.SetDefault("layout.pixels_per_char", 20)
	v.SetDefault("layout.char_advance_px", 7)
	v.SetDefault("layout.column_widths", "10,10,20,10,10")
	v.SetDefault("layout.tab_width", 4)

	// Reconcile defaults
	v.SetDefault("reconcile.interval", "5m")
	v.SetDefault("reconcile.stale_after", "15m")

	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "OCRDESK_SERVER_PORT",
		"server.read_timeout":            "OCRDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "OCRDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":             "OCRDESK_SERVER_ENVIRONMENT",
		"db.host":                        "OCRDESK_DB_HOST",
		"db.port":                        "OCRDESK_DB_PORT",
		"db.user":                        "OCRDESK_DB_USER",
		"db.password":                    "OCRDESK_DB_PASSWORD",
		"db.name":                        "OCRDESK_DB_NAME",
		"db.sslmode":                     "OCRDESK_DB_SSLMODE",
		"db.max_open":                    "OCRDESK_DB_MAX_OPEN",
		"db.max_idle":                    "OCRDESK_DB_MAX_IDLE",
		"db.max_idle_time":               "OCRDESK_DB_MAX_IDLE_TIME",
		"db.connect_timeout":             "OCRDESK_DB_CONNECT_TIMEOUT",
		"jwt.secret":                     "OCRDESK_JWT_SECRET",
		"jwt.access_expiry":              "OCRDESK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "OCRDESK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "OCRDESK_JWT_ISSUER",
		"s3.region":                      "OCRDESK_S3_REGION",
		"s3.bucket":                      "OCRDESK_S3_BUCKET",
		"s3.endpoint":                    "OCRDESK_S3_ENDPOINT",
		"s3.access_key":                  "OCRDESK_S3_ACCESS_KEY",
		"s3.secret_key":                  "OCRDESK_S3_SECRET_KEY",
		"s3.presign_expiry":              "OCRDESK_S3_PRESIGN_EXPIRY",
		"upload.max_file_size_mb":        "OCRDESK_UPLOAD_MAX_FILE_SIZE_MB",
		"log.level":                      "OCRDESK_LOG_LEVEL",
		"log.format":                     "OCRDESK_LOG_FORMAT",
		"cors.allowed_origins":           "OCRDESK_CORS_ALLOWED_ORIGINS",
		"ocr.language":                   "OCRDESK_OCR_LANGUAGE",
		"ocr.page_seg_mode":              "OCRDESK_OCR_PAGE_SEG_MODE",
		"ocr.tessdata_prefix":            "OCRDESK_OCR_TESSDATA_PREFIX",
		"layout.band_height":             "OCRDESK_LAYOUT_BAND_HEIGHT",
		"layout.pixels_per_char":         "OCRDESK_LAYOUT_PIXELS_PER_CHAR",
		"layout.char_advance_px":         "OCRDESK_LAYOUT_CHAR_ADVANCE_PX",
		"layout.column_widths":           "OCRDESK_LAYOUT_COLUMN_WIDTHS",
		"layout.tab_width":               "OCRDESK_LAYOUT_TAB_WIDTH",
		"reconcile.interval":             "OCRDESK_RECONCILE_INTERVAL",
		"reconcile.stale_after":          "OCRDESK_RECONCILE_STALE_AFTER",
		"rate_limit.requests_per_minute": "OCRDESK_RATE_LIMIT_REQUESTS_PER_MINUTE",
		"rate_limit.burst":               "OCRDESK_RATE_LIMIT_BURST",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if OCRDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("OCRDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		MaxIdleTime:    v.GetDuration("db.max_idle_time"),
		ConnectTimeout: v.GetDuration("db.connect_timeout"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.OCR = OCRConfig{
		Language:       v.GetString("ocr.language"),
		PageSegMode:    v.GetInt("ocr.page_seg_mode"),
		TessdataPrefix: v.GetString("ocr.tessdata_prefix"),
	}

	widths, err := ParseColumnWidths(v.GetString("layout.column_widths"))
	if err != nil {
		return nil, fmt.Errorf("layout.column_widths: %w", err)
	}
	cfg.Layout = LayoutConfig{
		BandHeight:    v.GetInt("layout.band_height"),
		PixelsPerChar: v.GetInt("layout.pixels_per_char"),
		CharAdvancePx: v.GetInt("layout.char_advance_px"),
		ColumnWidths:  widths,
		TabWidth:      v.GetInt("layout.tab_width"),
	}
	cfg.Reconcile = ReconcileConfig{
		Interval:   v.GetDuration("reconcile.interval"),
		StaleAfter: v.GetDuration("reconcile.stale_after"),
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerMinute: v.GetInt("rate_limit.requests_per_minute"),
		Burst:             v.GetInt("rate_limit.burst"),
	}

	return cfg, nil
}

// ParseColumnWidths parses a comma-separated list of positive column widths.
func ParseColumnWidths(s string) ([]int, error) {
	var widths []int
	for _, part := range splitList(s) {
		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: %w", part, err)
		}
		if w <= 0 {
			return nil, fmt.Errorf("width must be positive, got %d", w)
		}
		widths = append(widths, w)
	}
	return widths, nil
}

// splitList splits a comma-separated string, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
