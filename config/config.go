// Package config loads application configuration from YAML files and
// environment variables, with optional hot reload on file change.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// envPrefix namespaces environment overrides, e.g. ASSISTANT_DATABASE_HOST.
const envPrefix = "ASSISTANT"

// Manager loads and holds the active configuration. Safe for concurrent use.
type Manager struct {
	v *viper.Viper

	mu  sync.RWMutex
	cfg *core.Config
}

// NewManager creates an unloaded manager.
func NewManager() *Manager {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Manager{v: v}
}

// Load reads configuration from the given file path. An empty path loads
// defaults and environment variables only.
func (m *Manager) Load(path string) (*core.Config, error) {
	setDefaults(m.v)

	if path != "" {
		m.v.SetConfigFile(path)
		if err := m.v.ReadInConfig(); err != nil {
			return nil, core.WrapError(err, core.ErrorTypeConfig, "CONFIG_READ_FAILED",
				fmt.Sprintf("failed to read config file %s", path))
		}
	}

	cfg := &core.Config{}
	if err := m.v.Unmarshal(cfg); err != nil {
		return nil, core.WrapError(err, core.ErrorTypeConfig, "CONFIG_PARSE_FAILED", "failed to parse configuration")
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return cfg, nil
}

// Config returns the active configuration, or nil before Load.
func (m *Manager) Config() *core.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch reloads the configuration when the underlying file changes and hands
// the new value to onChange. Invalid edits are dropped and the previous
// configuration stays active.
func (m *Manager) Watch(onChange func(*core.Config)) {
	m.v.OnConfigChange(func(_ fsnotify.Event) {
		cfg := &core.Config{}
		if err := m.v.Unmarshal(cfg); err != nil {
			return
		}
		if err := validate(cfg); err != nil {
			return
		}

		m.mu.Lock()
		m.cfg = cfg
		m.mu.Unlock()

		if onChange != nil {
			onChange(cfg)
		}
	})
	m.v.WatchConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.query_timeout", 30*time.Second)
	v.SetDefault("database.max_rows", 10000)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	// Registered empty so environment overrides bind during Unmarshal.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("advisor.rewrite_columns", "id, name, created_at")
	v.SetDefault("advisor.default_limit", 1000)
}

func validate(cfg *core.Config) error {
	if cfg.Database == nil || cfg.Database.Database == "" {
		return core.NewError(core.ErrorTypeConfig, "CONFIG_INVALID", "database.database is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return core.NewError(core.ErrorTypeConfig, "CONFIG_INVALID",
			fmt.Sprintf("database.port %d out of range", cfg.Database.Port))
	}
	if cfg.LLM != nil && cfg.LLM.Temperature < 0 {
		return core.NewError(core.ErrorTypeConfig, "CONFIG_INVALID", "llm.temperature must be non-negative")
	}
	if cfg.Advisor != nil && cfg.Advisor.DefaultLimit < 0 {
		return core.NewError(core.ErrorTypeConfig, "CONFIG_INVALID", "advisor.default_limit must be non-negative")
	}
	return nil
}
