package usecase

import (
	"context"

	"unishare/internal/domain/entity"
	"unishare/internal/domain/repository"

	"github.com/google/uuid"
)

// ForumUsecase defines the interface for discussion threads and replies.
type ForumUsecase interface {
	// CreateThread starts a new discussion.
	CreateThread(ctx context.Context, authorID uuid.UUID, input *CreateThreadInput) (*entity.ForumThread, error)

	// GetThread returns a thread and bumps its view counter.
	GetThread(ctx context.Context, id uuid.UUID) (*entity.ForumThread, error)

	// ListThreads returns threads matching the filter, pinned first.
	ListThreads(ctx context.Context, filter repository.ThreadFilter, limit, offset int) ([]*entity.ForumThread, error)

	// Reply appends a reply to an unlocked thread.
	Reply(ctx context.Context, threadID, userID uuid.UUID, content string) (*entity.ForumReply, error)

	// ListReplies returns a thread's replies, oldest first.
	ListReplies(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*entity.ForumReply, error)

	// SetPinned toggles a thread's pinned flag. Moderators only.
	SetPinned(ctx context.Context, threadID uuid.UUID, pinned bool) error

	// SetLocked toggles a thread's locked flag. Moderators only.
	SetLocked(ctx context.Context, threadID uuid.UUID, locked bool) error

	// MarkBestAnswer flags a reply as the accepted answer. Only the thread
	// author or a moderator may do this.
	MarkBestAnswer(ctx context.Context, threadID, replyID, callerID uuid.UUID) error
}

// --- Input DTOs ---

// CreateThreadInput defines the data required to start a thread.
type CreateThreadInput struct {
	Title      string
	Content    string
	CourseCode string
	Faculty    string
}
