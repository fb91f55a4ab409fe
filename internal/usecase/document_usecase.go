package usecase

import (
	"context"
	"io"

	"unishare/internal/domain/entity"
	"unishare/internal/domain/repository"

	"github.com/google/uuid"
)

// DocumentUsecase defines the interface for document sharing operations:
// upload, moderation, download, rating, and commenting.
type DocumentUsecase interface {
	// Upload stores the file and creates a pending document.
	Upload(ctx context.Context, uploaderID uuid.UUID, input *UploadDocumentInput) (*entity.Document, error)

	// GetDocument returns a single document with its uploader populated.
	GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error)

	// ListDocuments returns documents matching the filter.
	ListDocuments(ctx context.Context, filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, int64, error)

	// Approve transitions a pending document to approved and credits the
	// uploader's point balance, both in one transaction. Only the first of
	// two concurrent decisions wins; the loser gets an error.
	Approve(ctx context.Context, documentID, reviewerID uuid.UUID) error

	// Reject transitions a pending document to rejected with a reason.
	Reject(ctx context.Context, documentID, reviewerID uuid.UUID, reason string) error

	// Download opens the stored file for an approved document and records
	// the download.
	Download(ctx context.Context, documentID, userID uuid.UUID) (io.ReadCloser, *entity.Document, error)

	// Rate scores an approved document 1-5. Raters cannot score their own
	// uploads and each member rates a document at most once.
	Rate(ctx context.Context, documentID, userID uuid.UUID, score int) error

	// GetMyRating returns the caller's rating of a document, if any.
	GetMyRating(ctx context.Context, documentID, userID uuid.UUID) (*entity.Rating, error)

	// Comment appends a comment to a document.
	Comment(ctx context.Context, documentID, userID uuid.UUID, content string) (*entity.Comment, error)

	// ListComments returns a document's comments, oldest first.
	ListComments(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]*entity.Comment, error)

	// PlatformStats returns the public landing-page aggregate.
	PlatformStats(ctx context.Context) (*entity.PlatformStats, error)

	// ReviewStats returns the moderation dashboard aggregate.
	ReviewStats(ctx context.Context) (*entity.ReviewStats, error)
}

// --- Input DTOs ---

// UploadDocumentInput defines the data required to upload a document.
type UploadDocumentInput struct {
	Title       string
	Description string
	Faculty     string
	Subject     string
	Category    string
	Tags        []string
	Year        string
	FileName    string
	FileType    string
	File        io.Reader
}
