package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// SysConfig holds base system settings
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the HTTP listener settings
type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

// LogConfig holds zap logger settings
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// SessionConfig controls the browser-session analog: the cookie scope that
// keys per-visitor carts and the retention window after which abandoned
// carts are purged by the scheduler.
type SessionConfig struct {
	Secret       string `yaml:"secret" json:"secret"`
	CartTTLHours int    `yaml:"cart_ttl_hours" json:"cart_ttl_hours"`
}

// AssistConfig configures the storefront chat assistant client.
// When Mock is true no network calls are made.
type AssistConfig struct {
	Mock     bool   `yaml:"mock" json:"mock"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	ApiKey   string `yaml:"api_key" json:"api_key"`
	Timeout  int    `yaml:"timeout" json:"timeout"`
}

// UserConfig is a demo login identity. Role "admin" unlocks the admin API
// and disables the cart for that session.
type UserConfig struct {
	Email        string `yaml:"email" json:"email"`
	Name         string `yaml:"name" json:"name"`
	PasswordHash string `yaml:"password_hash" json:"password_hash"`
	Role         string `yaml:"role" json:"role"`
}

// AppConfig is the root configuration object
type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Web     WebConfig     `yaml:"web" json:"web"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
	Session SessionConfig `yaml:"session" json:"session"`
	Assist  AssistConfig  `yaml:"assist" json:"assist"`
	Users   []UserConfig  `yaml:"users" json:"users"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Storefront",
		Workdir:  "/var/storefront",
		Location: "UTC",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1899,
		Secret: "9b6bc6d7-1d6a-4b3b-8a1e-storefront",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
	Session: SessionConfig{
		Secret:       "storefront-session-secret",
		CartTTLHours: 24,
	},
	Assist: AssistConfig{
		Mock:    true,
		Timeout: 30,
	},
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "metrics"), 0755)
}

// LoadConfig reads the YAML configuration from file, falling back to
// DefaultAppConfig when the path is empty or unreadable.
func LoadConfig(cfile string) *AppConfig {
	cfg := *DefaultAppConfig
	if cfile == "" {
		return &cfg
	}
	data, err := os.ReadFile(cfile)
	if err != nil {
		return &cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultAppConfig
	}
	return &cfg
}
