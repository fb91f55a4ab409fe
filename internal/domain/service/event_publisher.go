package service

import (
	"context"
)

// BadgeEvent represents an achievement event to be processed by the badge worker.
// Trigger names the action that may have unlocked a badge.
type BadgeEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	UserID    string `json:"user_id"`
	Trigger   string `json:"trigger"` // upload_approved, rating_given, comment_written, points_changed, verified
}

// Badge event triggers.
const (
	TriggerUploadApproved = "upload_approved"
	TriggerRatingGiven    = "rating_given"
	TriggerCommentWritten = "comment_written"
	TriggerPointsChanged  = "points_changed"
	TriggerVerified       = "verified"
)

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishBadgeEvent publishes a badge evaluation event for async processing
	PublishBadgeEvent(ctx context.Context, event *BadgeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
