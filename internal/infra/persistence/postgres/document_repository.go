// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"
	"time"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	"unishare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// documentRepository implements the repository.DocumentRepository interface.
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository is the constructor for documentRepository.
func NewDocumentRepository(db *gorm.DB) repository.DocumentRepository {
	return &documentRepository{
		db: db,
	}
}

// Create persists a new document in pending status.
func (repo *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	docM := fromDocumentDomain(doc)
	docM.Status = string(entity.DocumentPending)

	if err := repo.db.WithContext(ctx).Create(docM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProfileNotFound.WrapMessage("invalid uploader reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required document information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create document")
	}

	// Update the entity with generated values
	doc.ID = docM.ID
	doc.Status = entity.DocumentStatus(docM.Status)
	doc.CreatedAt = docM.CreatedAt
	doc.UpdatedAt = docM.UpdatedAt

	return nil
}

// FindByID retrieves a document by its unique ID with the uploader profile populated.
func (repo *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var docM model.DocumentModel

	if err := repo.db.WithContext(ctx).
		Preload("Uploader").
		Where("id = ?", id).
		First(&docM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDocumentNotFound
		}

		return nil, errors.Wrap(err, "failed to find document by ID")
	}

	return toDocumentDomain(&docM), nil
}

// applyDocumentFilter translates a DocumentFilter into WHERE clauses.
func applyDocumentFilter(query *gorm.DB, filter repository.DocumentFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Faculty != "" {
		query = query.Where("faculty = ?", filter.Faculty)
	}
	if filter.UploaderID != uuid.Nil {
		query = query.Where("uploader_id = ?", filter.UploaderID)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	return query
}

// documentOrder maps a filter sort name to an ORDER BY clause.
func documentOrder(sort string) string {
	switch sort {
	case repository.SortPopular:
		return "download_count DESC, created_at DESC"
	case repository.SortRating:
		return "average_rating DESC, rating_count DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// List retrieves documents matching the filter in its requested order.
func (repo *documentRepository) List(ctx context.Context, filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, error) {
	var docModels []*model.DocumentModel

	query := applyDocumentFilter(repo.db.WithContext(ctx), filter).
		Preload("Uploader").
		Order(documentOrder(filter.Sort))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&docModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list documents")
	}

	docs := make([]*entity.Document, 0, len(docModels))
	for _, docM := range docModels {
		docs = append(docs, toDocumentDomain(docM))
	}

	return docs, nil
}

// Count returns the number of documents matching the filter.
func (repo *documentRepository) Count(ctx context.Context, filter repository.DocumentFilter) (int64, error) {
	var count int64

	query := applyDocumentFilter(repo.db.WithContext(ctx).Model(&model.DocumentModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count documents")
	}

	return count, nil
}

// IncrementViews bumps a document's view counter with an atomic SQL increment.
func (repo *documentRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment document views")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDocumentNotFound
	}

	return nil
}

// MarkReviewed transitions a pending document to a terminal review status.
// The status guard lives in the WHERE clause, so when two reviewers race
// only one UPDATE matches a row and the loser sees ErrDocumentNotPending.
func (repo *documentRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status entity.DocumentStatus, reviewerID uuid.UUID, note string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("id = ? AND status = ?", id, string(entity.DocumentPending)).
		Updates(map[string]interface{}{
			"status":           string(status),
			"reviewer_id":      reviewerID,
			"rejection_reason": note,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark document reviewed")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing document from one already reviewed.
		var docM model.DocumentModel
		if err := repo.db.WithContext(ctx).
			Select("id").
			Where("id = ?", id).
			First(&docM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrDocumentNotFound
			}

			return errors.Wrap(err, "failed to check document status")
		}

		return repository.ErrDocumentNotPending
	}

	return nil
}

// CountApprovedByUploader returns how many approved documents a user has.
func (repo *documentRepository) CountApprovedByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("uploader_id = ? AND status = ?", uploaderID, string(entity.DocumentApproved)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count approved uploads")
	}

	return count, nil
}

// RecordDownload appends a download record and increments the document's
// download counter with a single atomic SQL increment.
func (repo *documentRepository) RecordDownload(ctx context.Context, download *entity.Download) error {
	downloadM := fromDownloadDomain(download)

	if err := repo.db.WithContext(ctx).Create(downloadM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrDocumentNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record download")
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("id = ?", download.DocumentID).
		Update("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		return errors.Wrap(err, "failed to increment download count")
	}

	download.ID = downloadM.ID
	download.DownloadedAt = downloadM.DownloadedAt

	return nil
}

// CreateRating persists a rating. The unique index on (document_id, user_id)
// rejects a second rating from the same user.
func (repo *documentRepository) CreateRating(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRating
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrDocumentNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRating
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt

	return nil
}

// RecalculateRating recomputes the stored average from the rating rows.
// The average keeps one decimal of precision as an integer scaled by ten.
func (repo *documentRepository) RecalculateRating(ctx context.Context, documentID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("id = ?", documentID).
		Updates(map[string]interface{}{
			"average_rating": gorm.Expr(
				"COALESCE((SELECT ROUND(AVG(score) * 10) FROM ratings WHERE document_id = ?), 0)",
				documentID,
			),
			"rating_count": gorm.Expr(
				"(SELECT COUNT(*) FROM ratings WHERE document_id = ?)",
				documentID,
			),
		}).Error; err != nil {
		return errors.Wrap(err, "failed to recalculate rating")
	}

	return nil
}

// FindRating retrieves a user's rating of a document, if any.
func (repo *documentRepository) FindRating(ctx context.Context, documentID, userID uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("document_id = ? AND user_id = ?", documentID, userID).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find rating")
	}

	return toRatingDomain(&ratingM), nil
}

// CountRatingsByUser returns how many ratings a user has given.
func (repo *documentRepository) CountRatingsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings by user")
	}

	return count, nil
}

// CreateComment appends a comment and increments the document's comment counter.
func (repo *documentRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrDocumentNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("comment content is required")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt

	return nil
}

// ListComments retrieves a document's comments, oldest first.
func (repo *documentRepository) ListComments(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var commentModels []*model.CommentModel

	query := repo.db.WithContext(ctx).
		Preload("Author").
		Where("document_id = ?", documentID).
		Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&commentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	comments := make([]*entity.Comment, 0, len(commentModels))
	for _, commentM := range commentModels {
		comments = append(comments, toCommentDomain(commentM))
	}

	return comments, nil
}

// CountCommentsByUser returns how many comments a user has written.
func (repo *documentRepository) CountCommentsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count comments by user")
	}

	return count, nil
}

// ReviewStats summarizes the moderation queue.
func (repo *documentRepository) ReviewStats(ctx context.Context) (*entity.ReviewStats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate review stats")
	}

	stats := &entity.ReviewStats{}
	for _, row := range rows {
		switch entity.DocumentStatus(row.Status) {
		case entity.DocumentPending:
			stats.Pending = row.Count
		case entity.DocumentApproved:
			stats.Approved = row.Count
		case entity.DocumentRejected:
			stats.Rejected = row.Count
		}
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count users for review stats")
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.ForumThreadModel{}).
		Count(&stats.ForumThreads).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count threads for review stats")
	}

	return stats, nil
}

// PlatformStats summarizes platform-wide totals for the landing page.
func (repo *documentRepository) PlatformStats(ctx context.Context) (*entity.PlatformStats, error) {
	stats := &entity.PlatformStats{}

	if err := repo.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("status = ?", string(entity.DocumentApproved)).
		Count(&stats.TotalDocuments).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count approved documents")
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.DownloadModel{}).
		Count(&stats.TotalDownloads).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count downloads")
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	return stats, nil
}

// --- Mapper Functions ---

// toDocumentDomain converts a GORM DocumentModel to a domain Document entity.
func toDocumentDomain(data *model.DocumentModel) *entity.Document {
	if data == nil {
		return nil
	}

	var tags []string
	if data.Tags != "" {
		tags = strings.Split(data.Tags, ",")
	}

	return &entity.Document{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		Faculty:         data.Faculty,
		Subject:         data.Subject,
		Category:        data.Category,
		Tags:            tags,
		FileURL:         data.FileURL,
		FileName:        data.FileName,
		FileSize:        data.FileSize,
		FileType:        data.FileType,
		Checksum:        data.Checksum,
		UploaderID:      data.UploaderID,
		Status:          entity.DocumentStatus(data.Status),
		RejectionReason: data.RejectionReason,
		DownloadCount:   data.DownloadCount,
		ViewCount:       data.ViewCount,
		AverageRating:   data.AverageRating,
		RatingCount:     data.RatingCount,
		Year:            data.Year,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		Uploader:        toProfileDomain(data.Uploader),
	}
}

// fromDocumentDomain converts a domain Document entity to a GORM DocumentModel.
func fromDocumentDomain(data *entity.Document) *model.DocumentModel {
	if data == nil {
		return nil
	}

	return &model.DocumentModel{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		Faculty:         data.Faculty,
		Subject:         data.Subject,
		Category:        data.Category,
		Tags:            strings.Join(data.Tags, ","),
		FileURL:         data.FileURL,
		FileName:        data.FileName,
		FileSize:        data.FileSize,
		FileType:        data.FileType,
		Checksum:        data.Checksum,
		UploaderID:      data.UploaderID,
		Status:          string(data.Status),
		RejectionReason: data.RejectionReason,
		DownloadCount:   data.DownloadCount,
		ViewCount:       data.ViewCount,
		AverageRating:   data.AverageRating,
		RatingCount:     data.RatingCount,
		Year:            data.Year,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:         data.ID,
		DocumentID: data.DocumentID,
		UserID:     data.UserID,
		Score:      data.Score,
		CreatedAt:  data.CreatedAt,
	}
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:         data.ID,
		DocumentID: data.DocumentID,
		UserID:     data.UserID,
		Score:      data.Score,
		CreatedAt:  data.CreatedAt,
	}
}

// toCommentDomain converts a GORM CommentModel to a domain Comment entity.
func toCommentDomain(data *model.CommentModel) *entity.Comment {
	if data == nil {
		return nil
	}

	return &entity.Comment{
		ID:         data.ID,
		DocumentID: data.DocumentID,
		UserID:     data.UserID,
		Content:    data.Content,
		CreatedAt:  data.CreatedAt,
		Author:     toProfileDomain(data.Author),
	}
}

// fromCommentDomain converts a domain Comment entity to a GORM CommentModel.
func fromCommentDomain(data *entity.Comment) *model.CommentModel {
	if data == nil {
		return nil
	}

	return &model.CommentModel{
		ID:         data.ID,
		DocumentID: data.DocumentID,
		UserID:     data.UserID,
		Content:    data.Content,
		CreatedAt:  data.CreatedAt,
	}
}

// fromDownloadDomain converts a domain Download entity to a GORM DownloadModel.
func fromDownloadDomain(data *entity.Download) *model.DownloadModel {
	if data == nil {
		return nil
	}

	downloadM := &model.DownloadModel{
		ID:           data.ID,
		DocumentID:   data.DocumentID,
		UserID:       data.UserID,
		DownloadedAt: data.DownloadedAt,
	}
	if downloadM.DownloadedAt.IsZero() {
		downloadM.DownloadedAt = time.Now()
	}

	return downloadM
}
