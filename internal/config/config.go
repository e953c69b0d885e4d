package config

import (
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultCSVFile is the dataset read when nothing else is configured.
const DefaultCSVFile = "sales_data.csv"

type Config struct {
	Data     DataConfig
	Viewer   ViewerConfig
	Render   RenderConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type DataConfig struct {
	CSVFile     string
	PreviewRows int
	LoadTimeout time.Duration
}

type ViewerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	OpenBrowser     bool
}

type RenderConfig struct {
	Workers int
	Timeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Data: DataConfig{
			CSVFile:     DefaultCSVFile,
			PreviewRows: 5,
			LoadTimeout: 30 * time.Second,
		},
		Viewer: ViewerConfig{
			Host:            v.GetString("VIEWER_HOST"),
			Port:            v.GetInt("VIEWER_PORT"),
			ReadTimeout:     v.GetDuration("VIEWER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("VIEWER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("VIEWER_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("VIEWER_SHUTDOWN_TIMEOUT"),
			OpenBrowser:     v.GetBool("VIEWER_OPEN_BROWSER"),
		},
		Render: RenderConfig{
			Workers: v.GetInt("RENDER_WORKERS"),
			Timeout: v.GetDuration("RENDER_TIMEOUT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Security: SecurityConfig{
			EnableRateLimit: v.GetBool("RATE_LIMIT_ENABLED"),
			RateLimitRPS:    v.GetInt("RATE_LIMIT_RPS"),
			RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("VIEWER_HOST", "127.0.0.1")
	v.SetDefault("VIEWER_PORT", 0)
	v.SetDefault("VIEWER_READ_TIMEOUT", 10*time.Second)
	v.SetDefault("VIEWER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("VIEWER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("VIEWER_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("VIEWER_OPEN_BROWSER", true)

	v.SetDefault("RENDER_WORKERS", 4)
	v.SetDefault("RENDER_TIMEOUT", 60*time.Second)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 20)
}

func (c *Config) validate() error {
	// The viewer stands in for figure windows; it must not be reachable
	// from other hosts.
	if !isLoopback(c.Viewer.Host) {
		return fmt.Errorf("viewer host must be a loopback address, got %q", c.Viewer.Host)
	}

	if c.Viewer.Port < 0 || c.Viewer.Port > 65535 {
		return fmt.Errorf("viewer port must be between 0 and 65535, got %d", c.Viewer.Port)
	}

	if c.Viewer.ReadTimeout <= 0 {
		return fmt.Errorf("viewer read timeout must be positive")
	}

	if c.Viewer.WriteTimeout <= 0 {
		return fmt.Errorf("viewer write timeout must be positive")
	}

	if c.Viewer.ShutdownTimeout <= 0 {
		return fmt.Errorf("viewer shutdown timeout must be positive")
	}

	if c.Render.Workers < 1 {
		return fmt.Errorf("render workers must be at least 1, got %d", c.Render.Workers)
	}

	if c.Render.Timeout <= 0 {
		return fmt.Errorf("render timeout must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (c *Config) Address() string {
	return net.JoinHostPort(c.Viewer.Host, fmt.Sprintf("%d", c.Viewer.Port))
}
