package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	PokeAPI    PokeAPIConfig    `mapstructure:"pokeapi"`
	WPPConnect WPPConnectConfig `mapstructure:"wppconnect"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the webhook HTTP server settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	VerifyToken string `mapstructure:"verify_token"`
}

// GeminiConfig holds the language-model client settings.
type GeminiConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	TimeoutMS int    `mapstructure:"timeout"` // milliseconds
}

// PokeAPIConfig holds the data-source client settings.
type PokeAPIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutMS      int    `mapstructure:"timeout"`   // milliseconds
	CacheTTLSec    int    `mapstructure:"cache_ttl"` // seconds
	SuggestDefault int    `mapstructure:"suggest_default"`
}

// WPPConnectConfig holds the outbound messaging transport settings.
type WPPConnectConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutMS   int    `mapstructure:"timeout"`    // milliseconds
	SendDelayMS int    `mapstructure:"send_delay"` // milliseconds, anti-flood
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required")
	}
	if cfg.PokeAPI.BaseURL == "" {
		return fmt.Errorf("pokeapi.base_url is required")
	}
	if cfg.WPPConnect.BaseURL == "" {
		return fmt.Errorf("wppconnect.base_url is required")
	}
	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when redis is enabled")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pokedex-bot"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Gemini.TimeoutMS == 0 {
		cfg.Gemini.TimeoutMS = 30000
	}
	if cfg.PokeAPI.BaseURL == "" {
		cfg.PokeAPI.BaseURL = "https://pokeapi.co/api/v2"
	}
	if cfg.PokeAPI.TimeoutMS == 0 {
		cfg.PokeAPI.TimeoutMS = 10000
	}
	if cfg.PokeAPI.SuggestDefault == 0 {
		cfg.PokeAPI.SuggestDefault = 1
	}
	if cfg.PokeAPI.CacheTTLSec == 0 {
		cfg.PokeAPI.CacheTTLSec = 86400
	}
	if cfg.WPPConnect.BaseURL == "" {
		cfg.WPPConnect.BaseURL = "http://localhost:21465"
	}
	if cfg.WPPConnect.TimeoutMS == 0 {
		cfg.WPPConnect.TimeoutMS = 15000
	}
	if cfg.WPPConnect.SendDelayMS == 0 {
		cfg.WPPConnect.SendDelayMS = 1000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}
