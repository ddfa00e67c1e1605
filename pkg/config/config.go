package config

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Gateway modes
const (
	ModeConsole   = "console"
	ModeWebSocket = "websocket"
)

// Config holds the bot configuration
type Config struct {
	// Gateway configuration
	Mode       string // "console" or "websocket"
	ListenAddr string

	// Reminder configuration
	ReminderDelay time.Duration

	// Logging configuration, Level is only meaningful when LogLevel is set
	LogLevel string
	Level    log.Level
}

// New creates a new configuration
func New(mode, listenAddr string, reminderDelay time.Duration, logLevel string) (*Config, error) {
	// Check for environment variables if not provided
	if mode == "" {
		mode = os.Getenv("GLYCEMIABOT_MODE")
	}
	if mode == "" {
		mode = ModeConsole
	}

	if listenAddr == "" {
		listenAddr = os.Getenv("GLYCEMIABOT_LISTEN")
	}

	// Validate mode
	switch mode {
	case ModeConsole:
	case ModeWebSocket:
		if listenAddr == "" {
			return nil, fmt.Errorf("listen address is required in websocket mode (use -listen flag or GLYCEMIABOT_LISTEN environment variable)")
		}
	default:
		return nil, fmt.Errorf("invalid mode: %s (must be '%s' or '%s')", mode, ModeConsole, ModeWebSocket)
	}

	if reminderDelay <= 0 {
		return nil, fmt.Errorf("reminder delay must be positive, got %v", reminderDelay)
	}

	var level log.Level
	if logLevel != "" {
		parsed, err := log.ParseLevel(logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	return &Config{
		Mode:          mode,
		ListenAddr:    listenAddr,
		ReminderDelay: reminderDelay,
		LogLevel:      logLevel,
		Level:         level,
	}, nil
}
