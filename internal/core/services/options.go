package services

import (
	"time"

	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
)

// ServiceOption configures the shared collaborators of a service.
type ServiceOption func(*BaseService)

// WithAuthMetrics sets the authentication outcome counter.
func WithAuthMetrics(m portssvc.AuthMetrics) ServiceOption {
	return func(b *BaseService) { b.Metrics = m }
}

// WithEventTracker sets the analytics sink.
func WithEventTracker(t portssvc.EventTracker) ServiceOption {
	return func(b *BaseService) { b.Tracker = t }
}

func newBaseService(opts []ServiceOption) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Flows and outcomes reported through AuthMetrics.
const (
	flowLocalRegister = "local_register"
	flowLocalLogin    = "local_login"
	flowGoogleLogin   = "google_login"

	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Analytics event names.
const (
	eventSignedUp         = "user_signed_up"
	eventLoggedIn         = "user_logged_in"
	eventGoogleLinked     = "google_account_linked"
	eventProfileCompleted = "profile_completed"
	eventCampaignCreated  = "campaign_created"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}
