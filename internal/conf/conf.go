package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents application configuration, loaded once at startup and
// immutable afterwards.
type Config struct {
	// Telegram configuration
	Telegram TelegramConfig

	// Forwarder configuration
	Forwarder ForwarderConfig

	// Filter configuration
	Filter FilterConfig

	// Session configuration
	Session SessionConfig
}

// TelegramConfig contains the platform credentials.
type TelegramConfig struct {
	APIID   int
	APIHash string
	Phone   string
}

// ForwarderConfig contains backend selection and backend-specific settings.
type ForwarderConfig struct {
	Type string

	// wecom group-robot webhook
	WeComWebhookURL string

	// wecom-app application backend
	WeComCorpID     string
	WeComCorpSecret string
	WeComAgentID    int
	WeComToUser     string

	// feishu webhook
	FeishuWebhookURL string

	// custom HTTP API backend
	CustomAPIURL     string
	CustomAPIMethod  string
	CustomAPIHeaders string
}

// FilterConfig contains the forwarding filter settings.
type FilterConfig struct {
	MuteFilter bool
	Whitelist  []string
	Blacklist  []string
}

// SessionConfig contains session persistence settings.
type SessionConfig struct {
	DBPath string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	apiID := 0
	if val := os.Getenv("TELEGRAM_API_ID"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			apiID = parsed
		}
	}

	agentID := 0
	if val := os.Getenv("WECOM_AGENTID"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			agentID = parsed
		}
	}

	sessionDBPath := os.Getenv("SESSION_DB_PATH")
	if sessionDBPath == "" {
		homeDir, _ := os.UserHomeDir()
		sessionDBPath = filepath.Join(homeDir, ".tgrelay", "session.db")
	}

	forwarderType := os.Getenv("FORWARDER_TYPE")
	if forwarderType == "" {
		forwarderType = "wecom"
	}

	toUser := os.Getenv("WECOM_TOUSER")
	if toUser == "" {
		toUser = "@all"
	}

	return &Config{
		Telegram: TelegramConfig{
			APIID:   apiID,
			APIHash: os.Getenv("TELEGRAM_API_HASH"),
			Phone:   os.Getenv("TELEGRAM_PHONE"),
		},
		Forwarder: ForwarderConfig{
			Type:             forwarderType,
			WeComWebhookURL:  os.Getenv("WECOM_WEBHOOK_URL"),
			WeComCorpID:      os.Getenv("WECOM_CORPID"),
			WeComCorpSecret:  os.Getenv("WECOM_CORPSECRET"),
			WeComAgentID:     agentID,
			WeComToUser:      toUser,
			FeishuWebhookURL: os.Getenv("FEISHU_WEBHOOK_URL"),
			CustomAPIURL:     os.Getenv("CUSTOM_API_URL"),
			CustomAPIMethod:  os.Getenv("CUSTOM_API_METHOD"),
			CustomAPIHeaders: os.Getenv("CUSTOM_API_HEADERS"),
		},
		Filter: FilterConfig{
			MuteFilter: parseBool(os.Getenv("FILTER_MUTED"), true),
			Whitelist:  parseList(os.Getenv("WHITELIST_CHATS")),
			Blacklist:  parseList(os.Getenv("BLACKLIST_CHATS")),
		},
		Session: SessionConfig{
			DBPath: sessionDBPath,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Telegram.APIID == 0 || c.Telegram.APIHash == "" || c.Telegram.Phone == "" {
		return &ConfigError{
			Field:   "TELEGRAM_API_ID/TELEGRAM_API_HASH/TELEGRAM_PHONE",
			Message: "required",
		}
	}
	return nil
}

// parseList parses a comma-separated list, dropping empty entries.
func parseList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseBool parses a true/false value, falling back to def.
func parseBool(value string, def bool) bool {
	if value == "" {
		return def
	}
	return strings.ToLower(value) == "true"
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
