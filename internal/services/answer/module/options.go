package module

import (
	"time"

	"vidtally/internal/platform/config"
	"vidtally/internal/services/translate"
)

// Options holds configuration settings for the answer module
type Options struct {
	QueryTimeout time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	df := cfg.Prefix("CORE_ANSWER_")
	return Options{
		QueryTimeout: df.MayDuration("QUERY_TIMEOUT", 15*time.Second),
	}
}

// translatorOptions reads the TRANSLATOR_* namespace
// an empty API key or model leaves the translator disabled
func translatorOptions(cfg config.Conf) translate.Options {
	tf := cfg.Prefix("TRANSLATOR_")
	return translate.Options{
		BaseURL:       tf.MayString("BASE_URL", ""),
		APIKey:        tf.MayString("API_KEY", ""),
		Model:         tf.MayString("MODEL", ""),
		FallbackModel: tf.MayString("FALLBACK_MODEL", ""),
		Timeout:       tf.MayDuration("TIMEOUT", 0),
	}
}
