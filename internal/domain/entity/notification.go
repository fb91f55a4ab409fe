package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationDocumentApproved NotificationType = "document_approved"
	NotificationDocumentRejected NotificationType = "document_rejected"
	NotificationBadgeAwarded     NotificationType = "badge_awarded"
	NotificationCommentReply     NotificationType = "comment_reply"
	NotificationForumReply       NotificationType = "forum_reply"
	NotificationBestAnswer       NotificationType = "best_answer"
)

// Notification is a single in-app notification for a user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Body      string
	RefID     *uuid.UUID // Optional link target (document, badge, thread).
	IsRead    bool
	CreatedAt time.Time
}

// UserDevice is a registered push token for a user. One user may hold
// several, one per installed client.
type UserDevice struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FCMToken  string
	Platform  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
