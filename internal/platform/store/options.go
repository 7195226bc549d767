package store

import "sahayak/internal/platform/logger"

// Option mutates a Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by the store and its subclients
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}
