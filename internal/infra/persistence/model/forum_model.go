package model

import (
	"time"

	"github.com/google/uuid"
)

// ForumThreadModel mirrors the 'forum_threads' table. Reply and view
// counters are maintained with atomic SQL increments.
type ForumThreadModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title      string    `gorm:"type:varchar(255);not null"`
	Content    string    `gorm:"type:text;not null"`
	CourseCode string    `gorm:"type:varchar(50);index"`
	Faculty    string    `gorm:"type:varchar(100);index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ViewCount  int       `gorm:"not null;default:0"`
	ReplyCount int       `gorm:"not null;default:0"`
	IsPinned   bool      `gorm:"not null;default:false"`
	IsLocked   bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Author *ProfileModel `gorm:"foreignKey:AuthorID;references:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ForumThreadModel) TableName() string {
	return "forum_threads"
}

// ForumReplyModel mirrors the 'forum_replies' table.
type ForumReplyModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ThreadID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Content      string    `gorm:"type:text;not null"`
	IsBestAnswer bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time

	Author *ProfileModel `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ForumReplyModel) TableName() string {
	return "forum_replies"
}
