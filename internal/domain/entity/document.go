// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the review state of an uploaded document.
type DocumentStatus string

const (
	// DocumentPending awaits moderator review. All uploads start here.
	DocumentPending DocumentStatus = "pending"
	// DocumentApproved is publicly listed and rewarded the uploader.
	DocumentApproved DocumentStatus = "approved"
	// DocumentRejected was declined with a reason.
	DocumentRejected DocumentStatus = "rejected"
)

// IsValid checks if the DocumentStatus is a valid value.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentPending, DocumentApproved, DocumentRejected:
		return true
	default:
		return false
	}
}

// Document is a shared learning resource uploaded by a member. The review
// state machine is pending -> approved|rejected; the approval transition is
// the only path that credits the uploader's ledger.
type Document struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Faculty         string
	Subject         string
	Category        string
	Tags            []string
	FileURL         string
	FileName        string
	FileSize        int64
	FileType        string
	Checksum        string // SHA-256 of the stored file, hex encoded.
	UploaderID      uuid.UUID
	Status          DocumentStatus
	RejectionReason string
	DownloadCount   int
	ViewCount       int
	AverageRating   int // Average score scaled by 10 (e.g. 45 = 4.5 stars).
	RatingCount     int
	Year            string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Uploader *Profile // Populated on detail reads.
}

// Rating is a member's 1-5 score for a document. One row per
// (document, user); re-rating updates the score in place.
type Rating struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	UserID     uuid.UUID
	Score      int
	CreatedAt  time.Time
}

// Comment is a member's comment on a document.
type Comment struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	UserID     uuid.UUID
	Content    string
	CreatedAt  time.Time

	Author *Profile // Populated on listing reads.
}

// Download records that a member fetched a document's file.
type Download struct {
	ID           uuid.UUID
	DocumentID   uuid.UUID
	UserID       uuid.UUID
	DownloadedAt time.Time
}

// PlatformStats is the public landing-page aggregate.
type PlatformStats struct {
	TotalDocuments int64 `json:"total_documents"`
	TotalDownloads int64 `json:"total_downloads"`
	TotalUsers     int64 `json:"total_users"`
}

// ReviewStats is the admin dashboard aggregate.
type ReviewStats struct {
	Pending      int64 `json:"pending"`
	Approved     int64 `json:"approved"`
	Rejected     int64 `json:"rejected"`
	TotalUsers   int64 `json:"total_users"`
	ForumThreads int64 `json:"forum_threads"`
}
