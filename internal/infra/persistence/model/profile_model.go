package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table. UserID references accounts.id (UUID).
// The points column carries a CHECK (points >= 0) constraint so the balance
// can never go negative regardless of application bugs.
type ProfileModel struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"type:varchar(100);not null"`
	Faculty     string    `gorm:"type:varchar(100)"`
	Bio         string    `gorm:"type:text"`
	StudentID   string    `gorm:"type:varchar(50)"`
	Role        string    `gorm:"type:varchar(20);not null;default:'student'"`
	Points      int       `gorm:"not null;default:0;check:points >= 0"`
	Verified    bool      `gorm:"not null;default:false"`
	JoinedAt    time.Time
	UpdatedAt   time.Time

	Badges []UserBadgeModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// FollowModel mirrors the 'follows' table. The composite unique index on
// (user_id, target_type, target_value) makes re-follows idempotent.
type FollowModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_follow"`
	TargetType  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_follow"`
	TargetValue string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_user_follow"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FollowModel) TableName() string {
	return "follows"
}
