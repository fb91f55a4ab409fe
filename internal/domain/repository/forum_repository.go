// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unishare/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for forum persistence.
var (
	// ErrThreadNotFound is returned when a forum thread is not found.
	ErrThreadNotFound = errors.New("forum thread not found")
	// ErrReplyNotFound is returned when a forum reply is not found.
	ErrReplyNotFound = errors.New("forum reply not found")
)

// ThreadFilter narrows thread listings. Zero values mean "no filter".
type ThreadFilter struct {
	Category string
	AuthorID uuid.UUID
	Query    string // Matched against title and body.
}

// ForumRepository defines the interface for forum thread and reply persistence.
type ForumRepository interface {
	// CreateThread persists a new thread.
	CreateThread(ctx context.Context, thread *entity.ForumThread) error

	// FindThreadByID retrieves a thread with its author profile populated.
	FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.ForumThread, error)

	// ListThreads retrieves threads matching the filter, pinned threads
	// first and then newest first.
	ListThreads(ctx context.Context, filter ThreadFilter, limit, offset int) ([]*entity.ForumThread, error)

	// IncrementViews bumps a thread's view counter.
	IncrementViews(ctx context.Context, threadID uuid.UUID) error

	// SetPinned toggles a thread's pinned flag.
	SetPinned(ctx context.Context, threadID uuid.UUID, pinned bool) error

	// SetLocked toggles a thread's locked flag.
	SetLocked(ctx context.Context, threadID uuid.UUID, locked bool) error

	// CreateReply appends a reply and increments the thread's reply
	// counter atomically.
	CreateReply(ctx context.Context, reply *entity.ForumReply) error

	// FindReplyByID retrieves a single reply.
	FindReplyByID(ctx context.Context, id uuid.UUID) (*entity.ForumReply, error)

	// ListReplies retrieves a thread's replies, oldest first, with author
	// profiles populated.
	ListReplies(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*entity.ForumReply, error)

	// MarkBestAnswer flags one reply as the accepted answer and clears the
	// flag from the thread's other replies.
	MarkBestAnswer(ctx context.Context, threadID, replyID uuid.UUID) error
}
