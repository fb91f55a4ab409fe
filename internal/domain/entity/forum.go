// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ForumThread is a discussion topic. Reply and view counters live on the
// thread row and are maintained with atomic increments, never from
// application-side reads.
type ForumThread struct {
	ID         uuid.UUID
	Title      string
	Content    string
	CourseCode string
	Faculty    string
	AuthorID   uuid.UUID
	ViewCount  int
	ReplyCount int
	IsPinned   bool
	IsLocked   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Author *Profile // Populated on detail reads.
}

// ForumReply is a reply within a thread. The thread author (or a
// moderator) can mark one reply as the best answer.
type ForumReply struct {
	ID           uuid.UUID
	ThreadID     uuid.UUID
	UserID       uuid.UUID
	Content      string
	IsBestAnswer bool
	CreatedAt    time.Time

	Author *Profile // Populated on listing reads.
}
