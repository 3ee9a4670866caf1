package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "SEPUSH_MONITOR_CONFIG"
	apiURLEnv        = "SEPUSH_API_URL"
	apiKeyEnv        = "SEPUSH_API_KEY"
	databasePathEnv  = "SEPUSH_DB_PATH"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	API           APIConfig          `yaml:"api"`
	Database      DatabaseConfig     `yaml:"database"`
	Cache         CacheConfig        `yaml:"cache"`
	Mocking       MockingConfig      `yaml:"mocking"`
	Location      LocationConfig     `yaml:"location"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// APIConfig describes how to reach the EskomSePush API.
type APIConfig struct {
	BaseURL string `yaml:"baseUrl"`
	// Key is only used to register the credential on first run; once
	// persisted, the stored settings entry is authoritative.
	Key string `yaml:"key"`
}

// DatabaseConfig describes the local sqlite cache file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig carries the process-wide TTL fallback for persisted entries.
type CacheConfig struct {
	DefaultTTLMinutes int `yaml:"defaultTtlMinutes"`
}

// MockingConfig toggles the offline/demo gateway.
type MockingConfig struct {
	UseMock   bool   `yaml:"useMock"`
	LatencyMs int    `yaml:"latencyMs"`
	// FixedNow pins the clock (RFC 3339) for deterministic demos; empty
	// means wall-clock.
	FixedNow string `yaml:"fixedNow"`
}

// Latency resolves the configured mock latency.
func (m MockingConfig) Latency() time.Duration {
	if m.LatencyMs <= 0 {
		return 0
	}
	return time.Duration(m.LatencyMs) * time.Millisecond
}

// FixedInstant parses FixedNow; ok is false when unset or unparseable.
func (m MockingConfig) FixedInstant() (time.Time, bool) {
	if m.FixedNow == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, m.FixedNow)
	if err != nil {
		log.Printf("config: cannot parse mocking.fixedNow %q: %v (using wall-clock)", m.FixedNow, err)
		return time.Time{}, false
	}
	return t, true
}

// LocationConfig pins the position reported by the static locator.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send stage alerts.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiURLEnv); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.Key != "" {
		base.API.Key = override.API.Key
	}
	if override.Database.Path != "" {
		base.Database.Path = override.Database.Path
	}
	if override.Cache.DefaultTTLMinutes > 0 {
		base.Cache.DefaultTTLMinutes = override.Cache.DefaultTTLMinutes
	}
	if override.Mocking.UseMock {
		base.Mocking.UseMock = true
	}
	if override.Mocking.LatencyMs > 0 {
		base.Mocking.LatencyMs = override.Mocking.LatencyMs
	}
	if override.Mocking.FixedNow != "" {
		base.Mocking.FixedNow = override.Mocking.FixedNow
	}
	if override.Location.Latitude != 0 || override.Location.Longitude != 0 {
		base.Location = override.Location
	}
	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	return base
}

func defaultConfig() Config {
	return Config{
		API:      APIConfig{BaseURL: "https://developer.sepush.co.za/business/2.0"},
		Database: DatabaseConfig{Path: defaultDatabasePath()},
		Cache:    CacheConfig{DefaultTTLMinutes: 60},
		Mocking:  MockingConfig{UseMock: false, LatencyMs: 0},
		// Johannesburg; the static locator stands in for real device
		// geolocation.
		Location: LocationConfig{Latitude: -26.2041, Longitude: 28.0473},
		Logging:  LoggingConfig{Level: "info"},
	}
}

func defaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, "sepushmonitor", "cache.db")
}
