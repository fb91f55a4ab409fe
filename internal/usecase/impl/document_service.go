package impl

import (
	"context"
	"io"
	"log/slog"
	"path"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/domain/service"
	"unishare/internal/usecase"
	"unishare/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// approvalReward is the point credit an uploader receives when a moderator
// approves their document. Credited exactly once per document, inside the
// approval transaction.
const approvalReward = 10

// documentService implements the DocumentUsecase interface.
type documentService struct {
	txManager repository.TransactionManager
	fileStore service.FileStore
	evaluator usecase.BadgeUsecase
	notifier  usecase.NotificationUsecase
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewDocumentService is the constructor for documentService.
func NewDocumentService(
	txManager repository.TransactionManager,
	fileStore service.FileStore,
	evaluator usecase.BadgeUsecase,
	notifier usecase.NotificationUsecase,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.DocumentUsecase {
	return &documentService{
		txManager: txManager,
		fileStore: fileStore,
		evaluator: evaluator,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// Upload stores the file and creates a pending document.
func (srv *documentService) Upload(ctx context.Context, uploaderID uuid.UUID, input *usecase.UploadDocumentInput) (*entity.Document, error) {
	docID := uuid.New()
	key := "documents/" + docID.String() + path.Ext(input.FileName)

	// Hash the file while streaming it to storage.
	hashingReader := util.NewHashingReader(input.File)

	size, err := srv.fileStore.Save(ctx, key, input.FileType, hashingReader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store document file")
	}

	doc := &entity.Document{
		ID:          docID,
		Title:       input.Title,
		Description: input.Description,
		Faculty:     input.Faculty,
		Subject:     input.Subject,
		Category:    input.Category,
		Tags:        input.Tags,
		FileURL:     key,
		FileName:    input.FileName,
		FileSize:    size,
		FileType:    input.FileType,
		Checksum:    hashingReader.Checksum(),
		UploaderID:  uploaderID,
		Status:      entity.DocumentPending,
		Year:        input.Year,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewDocumentRepository().Create(ctx, doc); err != nil {
			return errors.Wrap(err, "failed to create document")
		}

		return nil
	})
	if err != nil {
		// The row never landed; drop the orphaned file.
		if delErr := srv.fileStore.Delete(ctx, key); delErr != nil {
			srv.logger.Warn("failed to delete orphaned file", "key", key, "error", delErr)
		}

		return nil, err
	}

	srv.logger.Info("document uploaded",
		"documentID", doc.ID,
		"uploaderID", uploaderID,
		"size", util.FormatBytes(size),
	)

	return doc, nil
}

// GetDocument returns a single document with its uploader populated and
// bumps its view counter.
func (srv *documentService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc *entity.Document

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		documentRepo := repoFactory.NewDocumentRepository()

		found, err := documentRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return domainerrors.ErrDocumentNotFound
			}

			return errors.Wrap(err, "failed to find document")
		}

		if err := documentRepo.IncrementViews(ctx, id); err != nil {
			return errors.Wrap(err, "failed to increment views")
		}
		found.ViewCount++
		doc = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments returns documents matching the filter plus the total count.
func (srv *documentService) ListDocuments(ctx context.Context, filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, int64, error) {
	var (
		docs  []*entity.Document
		total int64
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		documentRepo := repoFactory.NewDocumentRepository()

		found, err := documentRepo.List(ctx, filter, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list documents")
		}

		count, err := documentRepo.Count(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to count documents")
		}

		docs = found
		total = count

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// Approve transitions a pending document to approved and credits the
// uploader, both in one transaction. The guarded status update lets only
// one of two concurrent decisions through, so the reward is credited
// exactly once.
func (srv *documentService) Approve(ctx context.Context, documentID, reviewerID uuid.UUID) error {
	var (
		uploaderID uuid.UUID
		docTitle   string
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		documentRepo := repoFactory.NewDocumentRepository()

		doc, err := documentRepo.FindByID(ctx, documentID)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return domainerrors.ErrDocumentNotFound
			}

			return errors.Wrap(err, "failed to find document")
		}
		uploaderID = doc.UploaderID
		docTitle = doc.Title

		if err := documentRepo.MarkReviewed(ctx, documentID, entity.DocumentApproved, reviewerID, ""); err != nil {
			if errors.Is(err, repository.ErrDocumentNotPending) {
				return domainerrors.ErrDocumentNotPending
			}

			return errors.Wrap(err, "failed to mark document approved")
		}

		if _, err := repoFactory.NewProfileRepository().AddPoints(ctx, uploaderID, approvalReward); err != nil {
			return errors.Wrap(err, "failed to credit approval reward")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.logger.Info("document approved",
		"documentID", documentID,
		"reviewerID", reviewerID,
		"uploaderID", uploaderID,
	)

	docID := documentID
	srv.notifyDecision(ctx, &entity.Notification{
		UserID: uploaderID,
		Type:   entity.NotificationDocumentApproved,
		Title:  "Document approved",
		Body:   docTitle,
		RefID:  &docID,
	})

	srv.publishTrigger(ctx, uploaderID, service.TriggerUploadApproved)

	return nil
}

// Reject transitions a pending document to rejected with a reason.
func (srv *documentService) Reject(ctx context.Context, documentID, reviewerID uuid.UUID, reason string) error {
	var uploaderID uuid.UUID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		documentRepo := repoFactory.NewDocumentRepository()

		doc, err := documentRepo.FindByID(ctx, documentID)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return domainerrors.ErrDocumentNotFound
			}

			return errors.Wrap(err, "failed to find document")
		}
		uploaderID = doc.UploaderID

		if err := documentRepo.MarkReviewed(ctx, documentID, entity.DocumentRejected, reviewerID, reason); err != nil {
			if errors.Is(err, repository.ErrDocumentNotPending) {
				return domainerrors.ErrDocumentNotPending
			}

			return errors.Wrap(err, "failed to mark document rejected")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.logger.Info("document rejected",
		"documentID", documentID,
		"reviewerID", reviewerID,
	)

	docID := documentID
	srv.notifyDecision(ctx, &entity.Notification{
		UserID: uploaderID,
		Type:   entity.NotificationDocumentRejected,
		Title:  "Document rejected",
		Body:   reason,
		RefID:  &docID,
	})

	return nil
}

// Download opens the stored file for an approved document and records the
// download.
func (srv *documentService) Download(ctx context.Context, documentID, userID uuid.UUID) (io.ReadCloser, *entity.Document, error) {
	var doc *entity.Document

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		documentRepo := repoFactory.NewDocumentRepository()

		found, err := documentRepo.FindByID(ctx, documentID)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return domainerrors.ErrDocumentNotFound
			}

			return errors.Wrap(err, "failed to find document")
		}
		if found.Status != entity.DocumentApproved {
			return domainerrors.ErrDocumentNotApproved
		}

		download := &entity.Download{
			DocumentID: documentID,
			UserID:     userID,
		}
		if err := documentRepo.RecordDownload(ctx, download); err != nil {
			return errors.Wrap(err, "failed to record download")
		}
		doc = found

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	reader, err := srv.fileStore.Open(ctx, doc.FileURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open document file")
	}

	return reader, doc, nil
}

// Rate scores an approved document 1-5. Raters cannot score their own
// uploads and each member rates a document at most once. The stored
// average is recomputed inside the same transaction as the rating insert.
func (srv *documentService) Rate(ctx context.Context, documentID, userID uuid.UUID, score int) error {
	if score < 1 || score > 5 {
		return domainerrors.ErrInvalidRating
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		documentRepo := repoFactory.NewDocumentRepository()

		doc, err := documentRepo.FindByID(ctx, documentID)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return domainerrors.ErrDocumentNotFound
			}

			return errors.Wrap(err, "failed to find document")
		}
		if doc.Status != entity.DocumentApproved {
			return domainerrors.ErrDocumentNotApproved
		}
		if doc.UploaderID == userID {
			return domainerrors.ErrOwnDocumentRating
		}

		rating := &entity.Rating{
			DocumentID: documentID,
			UserID:     userID,
			Score:      score,
		}
		if err := documentRepo.CreateRating(ctx, rating); err != nil {
			if errors.Is(err, repository.ErrDuplicateRating) {
				return domainerrors.ErrAlreadyRated
			}

			return errors.Wrap(err, "failed to create rating")
		}

		if err := documentRepo.RecalculateRating(ctx, documentID); err != nil {
			return errors.Wrap(err, "failed to recalculate rating")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.publishTrigger(ctx, userID, service.TriggerRatingGiven)

	return nil
}

// GetMyRating returns the caller's rating of a document; nil when the
// caller has not rated it.
func (srv *documentService) GetMyRating(ctx context.Context, documentID, userID uuid.UUID) (*entity.Rating, error) {
	var rating *entity.Rating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDocumentRepository().FindRating(ctx, documentID, userID)
		if err != nil {
			return errors.Wrap(err, "failed to find rating")
		}
		rating = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rating, nil
}

// Comment appends a comment to a document.
func (srv *documentService) Comment(ctx context.Context, documentID, userID uuid.UUID, content string) (*entity.Comment, error) {
	var comment *entity.Comment

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		documentRepo := repoFactory.NewDocumentRepository()

		if _, err := documentRepo.FindByID(ctx, documentID); err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return domainerrors.ErrDocumentNotFound
			}

			return errors.Wrap(err, "failed to find document")
		}

		fresh := &entity.Comment{
			DocumentID: documentID,
			UserID:     userID,
			Content:    content,
		}
		if err := documentRepo.CreateComment(ctx, fresh); err != nil {
			return errors.Wrap(err, "failed to create comment")
		}
		comment = fresh

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.publishTrigger(ctx, userID, service.TriggerCommentWritten)

	return comment, nil
}

// ListComments returns a document's comments, oldest first.
func (srv *documentService) ListComments(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var comments []*entity.Comment

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDocumentRepository().ListComments(ctx, documentID, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list comments")
		}
		comments = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// PlatformStats returns the public landing-page aggregate.
func (srv *documentService) PlatformStats(ctx context.Context) (*entity.PlatformStats, error) {
	var stats *entity.PlatformStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDocumentRepository().PlatformStats(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to compute platform stats")
		}
		stats = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ReviewStats returns the moderation dashboard aggregate.
func (srv *documentService) ReviewStats(ctx context.Context) (*entity.ReviewStats, error) {
	var stats *entity.ReviewStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDocumentRepository().ReviewStats(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to compute review stats")
		}
		stats = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// notifyDecision delivers a review decision to the uploader after the
// transaction commits. Delivery failures are logged and swallowed.
func (srv *documentService) notifyDecision(ctx context.Context, notification *entity.Notification) {
	if err := srv.notifier.NotifyUser(ctx, notification); err != nil {
		srv.logger.Warn("failed to notify review decision",
			"userID", notification.UserID,
			"type", notification.Type,
			"error", err,
		)
	}
}

// publishTrigger evaluates badges for the user and emits the matching
// event for off-process consumers. Failures are logged and swallowed;
// the write already committed and evaluation is idempotent.
func (srv *documentService) publishTrigger(ctx context.Context, userID uuid.UUID, trigger string) {
	if _, err := srv.evaluator.EvaluateBadges(ctx, userID); err != nil {
		srv.logger.Warn("failed to evaluate badges",
			"userID", userID,
			"trigger", trigger,
			"error", err,
		)
	}

	event := &service.BadgeEvent{
		UserID:  userID.String(),
		Trigger: trigger,
	}
	if err := srv.publisher.PublishBadgeEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish badge event",
			"userID", userID,
			"trigger", trigger,
			"error", err,
		)
	}
}
