// Package config reads typed settings out of the environment. Must* readers
// panic through the logger on bad values, May* readers fall back to defaults
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"vidtally/internal/platform/logger"
)

// Conf reads env vars under a fixed prefix. The root Conf sees everything,
// Prefix("CORE_API_") style children see their namespace only
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix narrows the view by another prefix segment
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key is the full env var name
func (c Conf) key(k string) string { return c.prefix + k }

// MustString returns the value of key, panicking when unset or blank
func (c Conf) MustString(key string) string {
	k := c.key(key)
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		logger.Get().Panic().Str("key", k).Msg("missing required env")
	}
	return v
}

// MustPort reads a TCP port and returns it as a listen addr like ":8080"
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port, want 1..65535")
	}
	return ":" + s
}

// MayString returns the value of key, or def when unset or blank
func (c Conf) MayString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	if v == "" {
		return def
	}
	return v
}

// MayInt parses an int, falling back to def on blank or junk. Junk is
// logged so a typoed env var does not fail silently
func (c Conf) MayInt(key string, def int) int {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int, using default")
	return def
}

// MayBool parses a bool the strconv way, falling back to def on blank or junk
func (c Conf) MayBool(key string, def bool) bool {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool, using default")
	return def
}

// MayDuration parses a time.Duration like "90s", falling back to def on
// blank or junk
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration, using default")
	return def
}

// MayCSV splits a comma separated value, dropping empty segments. A value
// of only commas counts as unset
func (c Conf) MayCSV(key string, def []string) []string {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
