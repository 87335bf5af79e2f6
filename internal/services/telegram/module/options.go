package module

import (
	"time"

	"vidtally/internal/platform/config"
)

// Options for the telegram module
type Options struct {
	Token       string
	Workers     int
	PollTimeout time.Duration
	Debug       bool
}

// FromConfig builds Options from the CORE_BOT_ namespace
func FromConfig(cfg config.Conf) Options {
	bot := cfg.Prefix("CORE_BOT_")
	return Options{
		Token:       bot.MustString("TOKEN"),
		Workers:     bot.MayInt("WORKERS", 8),
		PollTimeout: bot.MayDuration("POLL_TIMEOUT", 30*time.Second),
		Debug:       bot.MayBool("DEBUG", false),
	}
}
