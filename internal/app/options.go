package service

import (
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/scoring"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPackPolicy sets how many points a completed pack awards.
func WithPackPolicy(p scoring.PackPolicy) Option {
	return func(s *Service) {
		s.packPolicy = p
	}
}
