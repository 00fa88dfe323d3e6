package loader

import (
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/schema"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithValidator shares an already compiled schema validator.
func WithValidator(v *schema.Validator) Option {
	return func(ld *Loader) {
		if v != nil {
			ld.validator = v
		}
	}
}

// WithConcurrency caps parallel level fetches. Zero keeps the GOMAXPROCS
// default.
func WithConcurrency(n int) Option {
	return func(ld *Loader) {
		if n > 0 {
			ld.concurrency = n
		}
	}
}
