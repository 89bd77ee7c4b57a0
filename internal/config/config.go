package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigPathEnv points at the YAML file when no --config flag is given.
	ConfigPathEnv = "EUROPARL_SCRAPER_CONFIG"

	hubTokenEnv       = "HF_TOKEN"
	hubUsernameEnv    = "HF_USERNAME"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds every setting the scraper needs for one run.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Extract       ExtractConfig      `yaml:"extract"`
	Database      DatabaseConfig     `yaml:"database"`
	Hub           HubConfig          `yaml:"hub"`
	Notifications NotificationConfig `yaml:"notifications"`
	Archives      []ArchiveConfig    `yaml:"archives"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FetchConfig tunes HTTP behavior for page retrieval.
type FetchConfig struct {
	TimeoutSeconds   int    `yaml:"timeoutSeconds"`
	RetryAttempts    int    `yaml:"retryAttempts"`
	RetryWaitSeconds int    `yaml:"retryWaitSeconds"`
	UserAgent        string `yaml:"userAgent"`
}

// Timeout returns the per-request timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// RetryWait returns the base backoff delay between retries.
func (f FetchConfig) RetryWait() time.Duration {
	return time.Duration(f.RetryWaitSeconds) * time.Second
}

// ExtractConfig controls how document bodies are cleaned.
type ExtractConfig struct {
	MinLength           int      `yaml:"minLength"`
	BoilerplatePatterns []string `yaml:"boilerplatePatterns"`
}

// DatabaseConfig describes the local record store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// HubConfig describes the remote dataset repository target. The token is
// environment-only on purpose; it must never end up in a config file or log.
type HubConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Username      string `yaml:"username"`
	Token         string `yaml:"-"`
	PartialPolicy string `yaml:"partialPolicy"`
}

// PublishPartial reports whether a cut-short walk should still publish
// whatever was collected. Values: "always" (default) or "never".
func (h HubConfig) PublishPartial() bool {
	return h.PartialPolicy != "never"
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send the run summary.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// ArchiveConfig describes one document archive to walk: where to start,
// what the forward-navigation link looks like, and where the result goes.
type ArchiveConfig struct {
	Name            string `yaml:"name"`
	StartURL        string `yaml:"startUrl"`
	NextLabel       string `yaml:"nextLabel"`
	ContentSelector string `yaml:"contentSelector"`
	Language        string `yaml:"language"`
	HubRepo         string `yaml:"hubRepo"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. path wins over the environment variable; both may be empty.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
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

	if len(cfg.Archives) == 0 {
		cfg.Archives = defaultConfig().Archives
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(hubTokenEnv); v != "" {
		c.Hub.Token = v
	}

	if v := os.Getenv(hubUsernameEnv); v != "" {
		c.Hub.Username = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Fetch.TimeoutSeconds > 0 {
		base.Fetch.TimeoutSeconds = override.Fetch.TimeoutSeconds
	}
	if override.Fetch.RetryAttempts > 0 {
		base.Fetch.RetryAttempts = override.Fetch.RetryAttempts
	}
	if override.Fetch.RetryWaitSeconds > 0 {
		base.Fetch.RetryWaitSeconds = override.Fetch.RetryWaitSeconds
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}

	if override.Extract.MinLength > 0 {
		base.Extract.MinLength = override.Extract.MinLength
	}
	if len(override.Extract.BoilerplatePatterns) > 0 {
		base.Extract.BoilerplatePatterns = override.Extract.BoilerplatePatterns
	}

	if override.Database.Path != "" {
		base.Database.Path = override.Database.Path
	}

	if override.Hub.Endpoint != "" {
		base.Hub.Endpoint = override.Hub.Endpoint
	}
	if override.Hub.Username != "" {
		base.Hub.Username = override.Hub.Username
	}
	if override.Hub.PartialPolicy != "" {
		base.Hub.PartialPolicy = override.Hub.PartialPolicy
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Archives) > 0 {
		base.Archives = override.Archives
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Fetch: FetchConfig{
			TimeoutSeconds:   20,
			RetryAttempts:    3,
			RetryWaitSeconds: 1,
			UserAgent:        "EuroparlScraper/1.0",
		},
		Extract: ExtractConfig{
			MinLength: 50,
			BoilerplatePatterns: []string{
				`(?i)\(The sitting (?:was suspended|opened|closed|ended) at[^)]*\)`,
				`(?i)\(Voting time ended at[^)]*\)`,
				`De vergadering wordt om \d{1,2}\.\d{2} uur (?:geopend|gesloten|geschorst|hervat)\.`,
				`Het debat wordt gesloten\.`,
				`\[(?:COM|A)\d+-\d+(?:/\d+)?\]`,
				`\[\s*\d{4}/\d{4}\((?:COD|INI|RSP|IMM|NLE)\)\]`,
				`^\d{1,4}$`,
			},
		},
		Database: DatabaseConfig{Path: "data/europarl.db"},
		Hub: HubConfig{
			Endpoint:      "https://huggingface.co",
			Username:      "vGassen",
			PartialPolicy: "always",
		},
		Archives: []ArchiveConfig{
			{
				Name:      "dutch-adopted-texts",
				StartURL:  "https://www.europarl.europa.eu/doceo/document/TA-5-1999-07-21-TOC_NL.html",
				NextLabel: "Volgende",
				Language:  "NL",
				HubRepo:   "Dutch-European-Parliament-Adopted-Texts",
			},
		},
	}
}
