// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for document persistence.
var (
	// ErrDocumentNotFound is returned when a document is not found.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDocumentNotPending is returned when a review decision targets a
	// document that is no longer pending.
	ErrDocumentNotPending = errors.New("document is not pending review")
	// ErrDuplicateRating is returned when a user rates the same document twice.
	ErrDuplicateRating = errors.New("document already rated by this user")
)

// Document list orderings.
const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortRating  = "rating"
)

// DocumentFilter narrows document listings. Zero values mean "no filter".
type DocumentFilter struct {
	Status     entity.DocumentStatus
	Subject    string
	Faculty    string
	UploaderID uuid.UUID
	Query      string // Matched against title and description.
	Sort       string // One of the Sort constants; empty means recent.
}

// DocumentRepository defines the interface for documents and the review,
// rating, comment, and download records attached to them.
type DocumentRepository interface {
	// Create persists a new document in pending status.
	Create(ctx context.Context, doc *entity.Document) error

	// FindByID retrieves a document by its unique ID with the uploader profile populated.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)

	// List retrieves documents matching the filter in its requested
	// order, newest first by default.
	List(ctx context.Context, filter DocumentFilter, limit, offset int) ([]*entity.Document, error)

	// Count returns the number of documents matching the filter.
	Count(ctx context.Context, filter DocumentFilter) (int64, error)

	// IncrementViews bumps the document's view counter with an atomic
	// SQL increment.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// MarkReviewed transitions a pending document to the given terminal
	// status, recording the reviewer and an optional note. It fails with
	// ErrDocumentNotPending when the document has already been reviewed,
	// so concurrent reviewers cannot both win.
	MarkReviewed(ctx context.Context, id uuid.UUID, status entity.DocumentStatus, reviewerID uuid.UUID, note string) error

	// CountApprovedByUploader returns how many approved documents a user has.
	CountApprovedByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error)

	// RecordDownload appends a download record and increments the
	// document's download counter atomically.
	RecordDownload(ctx context.Context, download *entity.Download) error

	// CreateRating persists a rating. Each user rates a document at most
	// once; a second attempt fails with ErrDuplicateRating.
	CreateRating(ctx context.Context, rating *entity.Rating) error

	// RecalculateRating recomputes the document's stored average rating
	// from its rating rows. The average is kept as stars scaled by ten.
	RecalculateRating(ctx context.Context, documentID uuid.UUID) error

	// FindRating retrieves a user's rating of a document, if any.
	FindRating(ctx context.Context, documentID, userID uuid.UUID) (*entity.Rating, error)

	// CountRatingsByUser returns how many ratings a user has given.
	CountRatingsByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CreateComment appends a comment and increments the document's
	// comment counter atomically.
	CreateComment(ctx context.Context, comment *entity.Comment) error

	// ListComments retrieves a document's comments, oldest first, with
	// author profiles populated.
	ListComments(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]*entity.Comment, error)

	// CountCommentsByUser returns how many comments a user has written.
	CountCommentsByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// ReviewStats summarizes the moderation queue (pending, approved,
	// rejected counts).
	ReviewStats(ctx context.Context) (*entity.ReviewStats, error)

	// PlatformStats summarizes platform-wide totals for the landing page.
	PlatformStats(ctx context.Context) (*entity.PlatformStats, error)
}
