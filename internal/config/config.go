package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// DefaultPort is the port the relay listens on when neither the file nor PORT set one.
const DefaultPort = 8080

// DefaultAPIURL is the base URL of the Telegram Bot API.
const DefaultAPIURL = "https://api.telegram.org"

// DefaultBrand is the name shown in the headline of every forwarded message.
const DefaultBrand = "EpixLabs"

var (
	// ErrMissingBotToken is returned by Load when no bot token is configured.
	ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

	// ErrMissingChatID is returned by Load when no destination chat is configured.
	ErrMissingChatID = errors.New("TELEGRAM_CHAT_ID is not set")
)

// Config represents the relay configuration.
type Config struct {
	Port     int            `yaml:"port"`
	Brand    string         `yaml:"brand"`
	LogLevel string         `yaml:"logLevel"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig holds the bot credential and the chat that receives submissions.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	APIURL   string `yaml:"apiUrl"`
}

// Load builds the configuration. If filepath is not empty, the YAML file is read first. The
// environment variables PORT, TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID, TELEGRAM_API_URL,
// BRAND_NAME and LOG_LEVEL override the file. A missing bot token or chat id is an error.
//
// Usage example:
// > export TELEGRAM_BOT_TOKEN=123:abc && export TELEGRAM_CHAT_ID=-100200300
func Load(filepath string) (*Config, error) {
	var config Config
	if filepath != "" {
		configFile, err := os.ReadFile(filepath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(configFile, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("could not parse PORT env variable: %w", err)
		}
		config.Port = p
	}
	overrideFromEnv(&config.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	overrideFromEnv(&config.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	overrideFromEnv(&config.Telegram.APIURL, "TELEGRAM_API_URL")
	overrideFromEnv(&config.Brand, "BRAND_NAME")
	overrideFromEnv(&config.LogLevel, "LOG_LEVEL")

	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Telegram.APIURL == "" {
		config.Telegram.APIURL = DefaultAPIURL
	}
	if config.Brand == "" {
		config.Brand = DefaultBrand
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports the first required value that is missing.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return ErrMissingBotToken
	}
	if c.Telegram.ChatID == "" {
		return ErrMissingChatID
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func overrideFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
