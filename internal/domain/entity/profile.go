// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the per-user platform profile. It owns the point balance that
// approval rewards credit and shop purchases debit, plus the moderation
// flags the admin surface manages. A profile is created lazily on first
// access, never by registration directly.
type Profile struct {
	UserID      uuid.UUID // Foreign key to the account this profile belongs to.
	DisplayName string    // Name shown across the platform, derived from the account on creation.
	Faculty     string    // Faculty the member belongs to, free-form.
	Bio         string    // Optional self-description.
	StudentID   string    // Optional student card number.
	Role        Role      // Platform role, defaults to student.
	Points      int       // Current point balance. Never negative.
	Verified    bool      // Set by an admin after identity verification.
	JoinedAt    time.Time // Timestamp of profile creation (first platform access).
	UpdatedAt   time.Time // Timestamp of the last modification.
}

// CanModerate reports whether the profile's role grants access to the
// moderation surface (document review, thread pinning, verification).
func (p *Profile) CanModerate() bool {
	return p.Role == RoleModerator || p.Role == RoleAdmin
}

// FollowTarget classifies what a follow subscription points at.
type FollowTarget string

const (
	FollowSubject FollowTarget = "subject"
	FollowFaculty FollowTarget = "faculty"
)

// Follow is a member's subscription to a subject or faculty. One member
// holds at most one follow per (target type, target value) pair.
type Follow struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TargetType  FollowTarget
	TargetValue string // The followed subject code or faculty name.
	CreatedAt   time.Time
}
