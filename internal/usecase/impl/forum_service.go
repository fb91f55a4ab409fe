package impl

import (
	"context"
	"log/slog"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// forumService implements the ForumUsecase interface.
type forumService struct {
	txManager repository.TransactionManager
	notifier  usecase.NotificationUsecase
	logger    *slog.Logger
}

// NewForumService is the constructor for forumService.
func NewForumService(
	txManager repository.TransactionManager,
	notifier usecase.NotificationUsecase,
	logger *slog.Logger,
) usecase.ForumUsecase {
	return &forumService{
		txManager: txManager,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateThread starts a new discussion.
func (srv *forumService) CreateThread(ctx context.Context, authorID uuid.UUID, input *usecase.CreateThreadInput) (*entity.ForumThread, error) {
	thread := &entity.ForumThread{
		Title:      input.Title,
		Content:    input.Content,
		CourseCode: input.CourseCode,
		Faculty:    input.Faculty,
		AuthorID:   authorID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewForumRepository().CreateThread(ctx, thread); err != nil {
			return errors.Wrap(err, "failed to create thread")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("forum thread created", "threadID", thread.ID, "authorID", authorID)

	return thread, nil
}

// GetThread returns a thread and bumps its view counter.
func (srv *forumService) GetThread(ctx context.Context, id uuid.UUID) (*entity.ForumThread, error) {
	var thread *entity.ForumThread

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		forumRepo := repoFactory.NewForumRepository()

		found, err := forumRepo.FindThreadByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrThreadNotFound) {
				return domainerrors.ErrThreadNotFound
			}

			return errors.Wrap(err, "failed to find thread")
		}

		if err := forumRepo.IncrementViews(ctx, id); err != nil {
			return errors.Wrap(err, "failed to bump view counter")
		}
		found.ViewCount++
		thread = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return thread, nil
}

// ListThreads returns threads matching the filter, pinned first.
func (srv *forumService) ListThreads(ctx context.Context, filter repository.ThreadFilter, limit, offset int) ([]*entity.ForumThread, error) {
	var threads []*entity.ForumThread

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewForumRepository().ListThreads(ctx, filter, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list threads")
		}
		threads = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return threads, nil
}

// Reply appends a reply to an unlocked thread and notifies the thread
// author after the reply commits.
func (srv *forumService) Reply(ctx context.Context, threadID, userID uuid.UUID, content string) (*entity.ForumReply, error) {
	var (
		reply       *entity.ForumReply
		authorID    uuid.UUID
		threadTitle string
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		forumRepo := repoFactory.NewForumRepository()

		thread, err := forumRepo.FindThreadByID(ctx, threadID)
		if err != nil {
			if errors.Is(err, repository.ErrThreadNotFound) {
				return domainerrors.ErrThreadNotFound
			}

			return errors.Wrap(err, "failed to find thread")
		}
		if thread.IsLocked {
			return domainerrors.ErrThreadLocked
		}
		authorID = thread.AuthorID
		threadTitle = thread.Title

		fresh := &entity.ForumReply{
			ThreadID: threadID,
			UserID:   userID,
			Content:  content,
		}
		if err := forumRepo.CreateReply(ctx, fresh); err != nil {
			return errors.Wrap(err, "failed to create reply")
		}
		reply = fresh

		return nil
	})
	if err != nil {
		return nil, err
	}

	if authorID != userID {
		refID := threadID
		srv.notify(ctx, &entity.Notification{
			UserID: authorID,
			Type:   entity.NotificationForumReply,
			Title:  "New reply in your thread",
			Body:   threadTitle,
			RefID:  &refID,
		})
	}

	return reply, nil
}

// ListReplies returns a thread's replies, oldest first.
func (srv *forumService) ListReplies(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*entity.ForumReply, error) {
	var replies []*entity.ForumReply

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewForumRepository().ListReplies(ctx, threadID, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list replies")
		}
		replies = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return replies, nil
}

// SetPinned toggles a thread's pinned flag.
func (srv *forumService) SetPinned(ctx context.Context, threadID uuid.UUID, pinned bool) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewForumRepository().SetPinned(ctx, threadID, pinned); err != nil {
			if errors.Is(err, repository.ErrThreadNotFound) {
				return domainerrors.ErrThreadNotFound
			}

			return errors.Wrap(err, "failed to set pinned flag")
		}

		return nil
	})
}

// SetLocked toggles a thread's locked flag.
func (srv *forumService) SetLocked(ctx context.Context, threadID uuid.UUID, locked bool) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewForumRepository().SetLocked(ctx, threadID, locked); err != nil {
			if errors.Is(err, repository.ErrThreadNotFound) {
				return domainerrors.ErrThreadNotFound
			}

			return errors.Wrap(err, "failed to set locked flag")
		}

		return nil
	})
}

// MarkBestAnswer flags a reply as the accepted answer. Only the thread
// author or a moderator may do this. The replier is notified after the
// flag commits.
func (srv *forumService) MarkBestAnswer(ctx context.Context, threadID, replyID, callerID uuid.UUID) error {
	var (
		replierID   uuid.UUID
		threadTitle string
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		forumRepo := repoFactory.NewForumRepository()

		thread, err := forumRepo.FindThreadByID(ctx, threadID)
		if err != nil {
			if errors.Is(err, repository.ErrThreadNotFound) {
				return domainerrors.ErrThreadNotFound
			}

			return errors.Wrap(err, "failed to find thread")
		}

		if thread.AuthorID != callerID {
			caller, err := repoFactory.NewProfileRepository().FindByUserID(ctx, callerID)
			if err != nil {
				if errors.Is(err, repository.ErrProfileNotFound) {
					return domainerrors.ErrForbidden
				}

				return errors.Wrap(err, "failed to find caller profile")
			}
			if !caller.CanModerate() {
				return domainerrors.ErrForbidden
			}
		}

		reply, err := forumRepo.FindReplyByID(ctx, replyID)
		if err != nil {
			if errors.Is(err, repository.ErrReplyNotFound) {
				return domainerrors.ErrReplyNotFound
			}

			return errors.Wrap(err, "failed to find reply")
		}

		if err := forumRepo.MarkBestAnswer(ctx, threadID, replyID); err != nil {
			if errors.Is(err, repository.ErrReplyNotFound) {
				return domainerrors.ErrReplyNotFound
			}

			return errors.Wrap(err, "failed to mark best answer")
		}
		replierID = reply.UserID
		threadTitle = thread.Title

		return nil
	})
	if err != nil {
		return err
	}

	if replierID != callerID {
		refID := threadID
		srv.notify(ctx, &entity.Notification{
			UserID: replierID,
			Type:   entity.NotificationBestAnswer,
			Title:  "Your reply was marked as the best answer",
			Body:   threadTitle,
			RefID:  &refID,
		})
	}

	return nil
}

// notify delivers a forum notification after the transaction commits.
// Delivery failures are logged and swallowed.
func (srv *forumService) notify(ctx context.Context, notification *entity.Notification) {
	if err := srv.notifier.NotifyUser(ctx, notification); err != nil {
		srv.logger.Warn("failed to notify forum event",
			"userID", notification.UserID,
			"type", notification.Type,
			"error", err,
		)
	}
}
