package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr           string
	Port                 string
	SessionSecret        string
	CookieSecure         bool
	GinMode              string
	SiteBaseURL          string
	SiteName             string
	AIAPIKey             string
	AITextModel          string
	AIImageModel         string
	AITimeout            time.Duration
	LogLevel             string
	LogFile              string
	ContactRatePerMinute int
}

const (
	defaultPort        = "8080"
	defaultTextModel   = "gemini-1.5-flash"
	defaultImageModel  = "gemini-2.0-flash-preview-image-generation"
	defaultAITimeout   = 60 * time.Second
	defaultContactRate = 5
	devSessionSecret   = "travelmada-dev-secret"
	defaultSiteBaseURL = "http://localhost:8080"
	defaultGinMode     = "release"
	defaultLogLevel    = "info"
	defaultSiteName    = "Travel Mada"
)

// LoadDotEnv reads a .env file when one exists. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if isNotExist(err) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// NewViper returns a viper instance wired to the process environment with
// every default applied. Callers may bind command line flags on top.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", defaultPort)
	v.SetDefault("listen_addr", "")
	v.SetDefault("session_secret", devSessionSecret)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("gin_mode", defaultGinMode)
	v.SetDefault("site_base_url", defaultSiteBaseURL)
	v.SetDefault("site_name", defaultSiteName)
	v.SetDefault("api_key", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("ai_text_model", defaultTextModel)
	v.SetDefault("ai_image_model", defaultImageModel)
	v.SetDefault("ai_timeout", defaultAITimeout)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("contact_rate_per_minute", defaultContactRate)
	v.AutomaticEnv()
	return v
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	return FromViper(NewViper())
}

// FromViper resolves an AppConfig from an already configured viper instance.
func FromViper(v *viper.Viper) AppConfig {
	port := trimmedOr(v.GetString("port"), defaultPort)

	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	// API_KEY wins; GEMINI_API_KEY is the fallback.
	apiKey := strings.TrimSpace(v.GetString("api_key"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(v.GetString("gemini_api_key"))
	}

	timeout := v.GetDuration("ai_timeout")
	if timeout <= 0 {
		timeout = defaultAITimeout
	}

	contactRate := v.GetInt("contact_rate_per_minute")
	if contactRate <= 0 {
		contactRate = defaultContactRate
	}

	return AppConfig{
		ListenAddr:           listenAddr,
		Port:                 port,
		SessionSecret:        trimmedOr(v.GetString("session_secret"), devSessionSecret),
		CookieSecure:         v.GetBool("cookie_secure"),
		GinMode:              trimmedOr(v.GetString("gin_mode"), defaultGinMode),
		SiteBaseURL:          strings.TrimRight(trimmedOr(v.GetString("site_base_url"), defaultSiteBaseURL), "/"),
		SiteName:             trimmedOr(v.GetString("site_name"), defaultSiteName),
		AIAPIKey:             apiKey,
		AITextModel:          trimmedOr(v.GetString("ai_text_model"), defaultTextModel),
		AIImageModel:         trimmedOr(v.GetString("ai_image_model"), defaultImageModel),
		AITimeout:            timeout,
		LogLevel:             trimmedOr(v.GetString("log_level"), defaultLogLevel),
		LogFile:              strings.TrimSpace(v.GetString("log_file")),
		ContactRatePerMinute: contactRate,
	}
}

// AIEnabled reports whether a generative service credential is configured.
func (c AppConfig) AIEnabled() bool {
	return c.AIAPIKey != ""
}

func trimmedOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
