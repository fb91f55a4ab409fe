// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// forumRepository implements the repository.ForumRepository interface.
type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository is the constructor for forumRepository.
func NewForumRepository(db *gorm.DB) repository.ForumRepository {
	return &forumRepository{
		db: db,
	}
}

// CreateThread persists a new thread.
func (repo *forumRepository) CreateThread(ctx context.Context, thread *entity.ForumThread) error {
	threadM := fromThreadDomain(thread)

	if err := repo.db.WithContext(ctx).Create(threadM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProfileNotFound.WrapMessage("invalid author reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required thread information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create thread")
	}

	thread.ID = threadM.ID
	thread.CreatedAt = threadM.CreatedAt
	thread.UpdatedAt = threadM.UpdatedAt

	return nil
}

// FindThreadByID retrieves a thread with its author profile populated.
func (repo *forumRepository) FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.ForumThread, error) {
	var threadM model.ForumThreadModel

	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&threadM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrThreadNotFound
		}

		return nil, errors.Wrap(err, "failed to find thread by ID")
	}

	return toThreadDomain(&threadM), nil
}

// ListThreads retrieves threads matching the filter, pinned first then newest first.
func (repo *forumRepository) ListThreads(ctx context.Context, filter repository.ThreadFilter, limit, offset int) ([]*entity.ForumThread, error) {
	var threadModels []*model.ForumThreadModel

	query := repo.db.WithContext(ctx).
		Preload("Author").
		Order("is_pinned DESC, created_at DESC")

	if filter.Category != "" {
		query = query.Where("course_code = ?", filter.Category)
	}
	if filter.AuthorID != uuid.Nil {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&threadModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list threads")
	}

	threads := make([]*entity.ForumThread, 0, len(threadModels))
	for _, threadM := range threadModels {
		threads = append(threads, toThreadDomain(threadM))
	}

	return threads, nil
}

// IncrementViews bumps a thread's view counter with an atomic SQL increment.
func (repo *forumRepository) IncrementViews(ctx context.Context, threadID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ForumThreadModel{}).
		Where("id = ?", threadID).
		Update("view_count", gorm.Expr("view_count + 1"))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment thread views")
	}

	if result.RowsAffected == 0 {
		return repository.ErrThreadNotFound
	}

	return nil
}

// SetPinned toggles a thread's pinned flag.
func (repo *forumRepository) SetPinned(ctx context.Context, threadID uuid.UUID, pinned bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ForumThreadModel{}).
		Where("id = ?", threadID).
		Update("is_pinned", pinned)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set thread pinned flag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrThreadNotFound
	}

	return nil
}

// SetLocked toggles a thread's locked flag.
func (repo *forumRepository) SetLocked(ctx context.Context, threadID uuid.UUID, locked bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ForumThreadModel{}).
		Where("id = ?", threadID).
		Update("is_locked", locked)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set thread locked flag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrThreadNotFound
	}

	return nil
}

// CreateReply appends a reply and increments the thread's reply counter.
func (repo *forumRepository) CreateReply(ctx context.Context, reply *entity.ForumReply) error {
	replyM := fromReplyDomain(reply)

	if err := repo.db.WithContext(ctx).Create(replyM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrThreadNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("reply content is required")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create reply")
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.ForumThreadModel{}).
		Where("id = ?", reply.ThreadID).
		Update("reply_count", gorm.Expr("reply_count + 1")).Error; err != nil {
		return errors.Wrap(err, "failed to increment reply count")
	}

	reply.ID = replyM.ID
	reply.CreatedAt = replyM.CreatedAt

	return nil
}

// FindReplyByID retrieves a single reply.
func (repo *forumRepository) FindReplyByID(ctx context.Context, id uuid.UUID) (*entity.ForumReply, error) {
	var replyM model.ForumReplyModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&replyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReplyNotFound
		}

		return nil, errors.Wrap(err, "failed to find reply")
	}

	return toReplyDomain(&replyM), nil
}

// ListReplies retrieves a thread's replies, oldest first.
func (repo *forumRepository) ListReplies(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*entity.ForumReply, error) {
	var replyModels []*model.ForumReplyModel

	query := repo.db.WithContext(ctx).
		Preload("Author").
		Where("thread_id = ?", threadID).
		Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&replyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list replies")
	}

	replies := make([]*entity.ForumReply, 0, len(replyModels))
	for _, replyM := range replyModels {
		replies = append(replies, toReplyDomain(replyM))
	}

	return replies, nil
}

// MarkBestAnswer flags one reply as the accepted answer and clears the flag
// from the thread's other replies so at most one answer is accepted.
func (repo *forumRepository) MarkBestAnswer(ctx context.Context, threadID, replyID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.ForumReplyModel{}).
		Where("thread_id = ?", threadID).
		Update("is_best_answer", false).Error; err != nil {
		return errors.Wrap(err, "failed to clear best answers")
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ForumReplyModel{}).
		Where("id = ? AND thread_id = ?", replyID, threadID).
		Update("is_best_answer", true)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark best answer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReplyNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toThreadDomain converts a GORM ForumThreadModel to a domain ForumThread entity.
func toThreadDomain(data *model.ForumThreadModel) *entity.ForumThread {
	if data == nil {
		return nil
	}

	return &entity.ForumThread{
		ID:         data.ID,
		Title:      data.Title,
		Content:    data.Content,
		CourseCode: data.CourseCode,
		Faculty:    data.Faculty,
		AuthorID:   data.AuthorID,
		ViewCount:  data.ViewCount,
		ReplyCount: data.ReplyCount,
		IsPinned:   data.IsPinned,
		IsLocked:   data.IsLocked,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
		Author:     toProfileDomain(data.Author),
	}
}

// fromThreadDomain converts a domain ForumThread entity to a GORM ForumThreadModel.
func fromThreadDomain(data *entity.ForumThread) *model.ForumThreadModel {
	if data == nil {
		return nil
	}

	return &model.ForumThreadModel{
		ID:         data.ID,
		Title:      data.Title,
		Content:    data.Content,
		CourseCode: data.CourseCode,
		Faculty:    data.Faculty,
		AuthorID:   data.AuthorID,
		ViewCount:  data.ViewCount,
		ReplyCount: data.ReplyCount,
		IsPinned:   data.IsPinned,
		IsLocked:   data.IsLocked,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// toReplyDomain converts a GORM ForumReplyModel to a domain ForumReply entity.
func toReplyDomain(data *model.ForumReplyModel) *entity.ForumReply {
	if data == nil {
		return nil
	}

	return &entity.ForumReply{
		ID:           data.ID,
		ThreadID:     data.ThreadID,
		UserID:       data.UserID,
		Content:      data.Content,
		IsBestAnswer: data.IsBestAnswer,
		CreatedAt:    data.CreatedAt,
		Author:       toProfileDomain(data.Author),
	}
}

// fromReplyDomain converts a domain ForumReply entity to a GORM ForumReplyModel.
func fromReplyDomain(data *entity.ForumReply) *model.ForumReplyModel {
	if data == nil {
		return nil
	}

	return &model.ForumReplyModel{
		ID:           data.ID,
		ThreadID:     data.ThreadID,
		UserID:       data.UserID,
		Content:      data.Content,
		IsBestAnswer: data.IsBestAnswer,
		CreatedAt:    data.CreatedAt,
	}
}
