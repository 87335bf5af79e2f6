package store

import (
	"vidtally/internal/platform/logger"
)

// Option adjusts the Store while Open assembles it
type Option func(*Store) error

// WithLogger hands the pg and clickhouse clients a shared logger
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
