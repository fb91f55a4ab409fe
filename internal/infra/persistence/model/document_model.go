package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentModel mirrors the 'documents' table. Tags are stored as a
// comma-joined text column and split in the mapper layer. The average
// rating column keeps stars scaled by ten as an integer.
type DocumentModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Description     string    `gorm:"type:text"`
	Faculty         string    `gorm:"type:varchar(100);index"`
	Subject         string    `gorm:"type:varchar(100);index"`
	Category        string    `gorm:"type:varchar(50)"`
	Tags            string    `gorm:"type:text"`
	FileURL         string    `gorm:"type:varchar(500);not null"`
	FileName        string    `gorm:"type:varchar(255);not null"`
	FileSize        int64     `gorm:"not null;default:0"`
	FileType        string    `gorm:"type:varchar(50)"`
	Checksum        string    `gorm:"type:varchar(64)"`
	UploaderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string    `gorm:"type:text"`
	ReviewerID      *uuid.UUID `gorm:"type:uuid"`
	DownloadCount   int       `gorm:"not null;default:0"`
	ViewCount       int       `gorm:"not null;default:0"`
	AverageRating   int       `gorm:"not null;default:0"`
	RatingCount     int       `gorm:"not null;default:0"`
	Year            string    `gorm:"type:varchar(20)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Uploader *ProfileModel `gorm:"foreignKey:UploaderID;references:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (DocumentModel) TableName() string {
	return "documents"
}

// RatingModel mirrors the 'ratings' table. The composite unique index on
// (document_id, user_id) enforces one rating per member per document.
type RatingModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_document_rater"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_document_rater"`
	Score      int       `gorm:"not null;check:score >= 1 AND score <= 5"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time

	Author *ProfileModel `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// DownloadModel mirrors the 'downloads' table.
type DownloadModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DocumentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	DownloadedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (DownloadModel) TableName() string {
	return "downloads"
}
