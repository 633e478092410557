package services

import (
	"context"
	"log/slog"

	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics portssvc.AuthMetrics
	Tracker portssvc.EventTracker
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// observe counts an authentication outcome when metrics are configured.
func (s *BaseService) observe(flow, outcome string) {
	if s.Metrics != nil {
		s.Metrics.ObserveAuth(flow, outcome)
	}
}

// track sends an analytics event when a tracker is configured.
func (s *BaseService) track(distinctID, event string, props map[string]any) {
	if s.Tracker != nil {
		s.Tracker.Track(distinctID, event, props)
	}
}
