// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BadgeType is the closed set of achievement kinds in the badge catalog.
// Counter-driven types are awarded by the badge evaluator from recomputed
// counters; the remaining types are granted by explicit effects and are
// never touched by the evaluator.
type BadgeType string

const (
	// BadgeTypeJoin is granted once when the profile is first created.
	BadgeTypeJoin BadgeType = "join"
	// BadgeTypeUpload is driven by the count of approved uploads.
	BadgeTypeUpload BadgeType = "upload"
	// BadgeTypePoints is driven by the current point balance.
	BadgeTypePoints BadgeType = "points"
	// BadgeTypeRating is driven by the count of ratings the member has given.
	BadgeTypeRating BadgeType = "rating"
	// BadgeTypeComment is driven by the count of comments the member has written.
	BadgeTypeComment BadgeType = "comment"
	// BadgeTypeVerified is granted by the admin verification effect.
	BadgeTypeVerified BadgeType = "verified"
)

// CounterDriven reports whether the badge evaluator may award this type
// from achievement counters. Join and verified badges are externally
// granted and excluded by design.
func (t BadgeType) CounterDriven() bool {
	switch t {
	case BadgeTypeUpload, BadgeTypePoints, BadgeTypeRating, BadgeTypeComment:
		return true
	default:
		return false
	}
}

// Badge is a static catalog entry describing an achievement and the
// threshold that earns it.
type Badge struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string    // Icon token rendered by the client.
	Color       string    // Hex color rendered by the client.
	Type        BadgeType
	Requirement int // Counter threshold; zero for externally granted types.
}

// UserBadge records that a member holds a badge. At most one record exists
// per (user, badge) pair; awarding is idempotent and never revoked.
type UserBadge struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	BadgeID  uuid.UUID
	EarnedAt time.Time

	Badge *Badge // Populated on reads that join the catalog.
}

// AchievementCounters holds the recomputed counters the evaluator matches
// against the badge catalog.
type AchievementCounters struct {
	ApprovedUploads int
	RatingsGiven    int
	CommentsWritten int
	Points          int
}

// Meets reports whether the counters satisfy the badge's threshold.
// Non-counter-driven types never match.
func (c AchievementCounters) Meets(badge *Badge) bool {
	switch badge.Type {
	case BadgeTypeUpload:
		return c.ApprovedUploads >= badge.Requirement
	case BadgeTypePoints:
		return c.Points >= badge.Requirement
	case BadgeTypeRating:
		return c.RatingsGiven >= badge.Requirement
	case BadgeTypeComment:
		return c.CommentsWritten >= badge.Requirement
	default:
		return false
	}
}
