package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeModel mirrors the 'badges' table, the badge catalog.
type BadgeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	Icon        string    `gorm:"type:varchar(100)"`
	Color       string    `gorm:"type:varchar(20)"`
	Type        string    `gorm:"type:varchar(20);not null;index"`
	Requirement int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (BadgeModel) TableName() string {
	return "badges"
}

// UserBadgeModel mirrors the 'user_badges' table. The composite unique index
// on (user_id, badge_id) makes awards idempotent at the storage level.
type UserBadgeModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge"`
	BadgeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge"`
	EarnedAt time.Time

	Badge *BadgeModel `gorm:"foreignKey:BadgeID"`
}

// TableName explicitly sets the table name for GORM.
func (UserBadgeModel) TableName() string {
	return "user_badges"
}
