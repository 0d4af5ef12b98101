package repository

import (
	"time"

	"github.com/okian/tuna/pkg/logger"
)

// Option applies a configuration option to the GormStore.
type Option func(*GormStore)

// WithLogger routes SQL diagnostics to l.
func WithLogger(l logger.Logger) Option {
	return func(s *GormStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLogSQL traces every statement at debug level.
func WithLogSQL(enabled bool) Option {
	return func(s *GormStore) {
		s.logSQL = enabled
	}
}

// WithSlowThreshold sets the duration above which statements are logged as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *GormStore) {
		if d > 0 {
			s.slowThreshold = d
		}
	}
}

// WithMaxOpenConns caps open connections. Ignored for sqlite, which uses one.
func WithMaxOpenConns(n int) Option {
	return func(s *GormStore) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}

// WithMaxIdleConns caps idle connections.
func WithMaxIdleConns(n int) Option {
	return func(s *GormStore) {
		if n >= 0 {
			s.maxIdleConns = n
		}
	}
}

// WithConnMaxLifetime bounds how long a connection is reused.
func WithConnMaxLifetime(d time.Duration) Option {
	return func(s *GormStore) {
		if d > 0 {
			s.connMaxLifetime = d
		}
	}
}

// WithAutoMigrate creates or updates the catalog tables when opening.
func WithAutoMigrate(enabled bool) Option {
	return func(s *GormStore) {
		s.autoMigrate = enabled
	}
}
