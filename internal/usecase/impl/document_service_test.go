package impl

import (
	"context"
	"io"
	"strings"
	"testing"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	mockRepo "unishare/internal/mocks/repository"
	mockService "unishare/internal/mocks/service"
	mockUsecase "unishare/internal/mocks/usecase"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentServiceFixtures struct {
	service   usecase.DocumentUsecase
	txManager *mockRepo.MockTransactionManager
	fileStore *mockService.MockFileStore
	evaluator *mockUsecase.MockBadgeUsecase
	notifier  *mockUsecase.MockNotificationUsecase
	publisher *mockService.MockEventPublisher
}

func createTestDocumentService(t *testing.T) documentServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	fileStore := mockService.NewMockFileStore(t)
	evaluator := mockUsecase.NewMockBadgeUsecase(t)
	notifier := mockUsecase.NewMockNotificationUsecase(t)
	publisher := mockService.NewMockEventPublisher(t)
	service := NewDocumentService(txManager, fileStore, evaluator, notifier, publisher, testLogger())

	return documentServiceFixtures{
		service:   service,
		txManager: txManager,
		fileStore: fileStore,
		evaluator: evaluator,
		notifier:  notifier,
		publisher: publisher,
	}
}

func TestDocumentService_Upload_Success(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	uploaderID := uuid.New()
	input := &usecase.UploadDocumentInput{
		Title:    "Calculus I Summary",
		Subject:  "MATH101",
		Faculty:  "Science",
		FileName: "summary.pdf",
		FileType: "application/pdf",
		File:     strings.NewReader("file contents"),
	}

	fx.fileStore.On("Save", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
	}), "application/pdf", mock.Anything).Return(int64(13), nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("Create", ctx, mock.MatchedBy(func(d *entity.Document) bool {
		return d.Status == entity.DocumentPending && d.UploaderID == uploaderID && d.FileSize == 13 && len(d.Checksum) == 64
	})).Return(nil)
	runTx(fx.txManager, factory)

	doc, err := fx.service.Upload(ctx, uploaderID, input)

	require.NoError(t, err)
	assert.Equal(t, entity.DocumentPending, doc.Status)
	assert.Equal(t, "Calculus I Summary", doc.Title)
}

func TestDocumentService_Upload_CreateFails_FileRemoved(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	input := &usecase.UploadDocumentInput{
		Title:    "Broken",
		FileName: "broken.pdf",
		FileType: "application/pdf",
		File:     strings.NewReader("x"),
	}

	fx.fileStore.On("Save", ctx, mock.Anything, "application/pdf", mock.Anything).Return(int64(1), nil)
	fx.fileStore.On("Delete", ctx, mock.Anything).Return(nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)
	runTx(fx.txManager, factory)

	doc, err := fx.service.Upload(ctx, uuid.New(), input)

	require.Error(t, err)
	assert.Nil(t, doc)
	fx.fileStore.AssertCalled(t, "Delete", ctx, mock.Anything)
}

func TestDocumentService_Approve_CreditsUploaderOnce(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	uploaderID := uuid.New()
	reviewerID := uuid.New()
	doc := &entity.Document{
		ID:         uuid.New(),
		Title:      "Linear Algebra Notes",
		UploaderID: uploaderID,
		Status:     entity.DocumentPending,
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	factory.On("NewProfileRepository").Return(profileRepo)

	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("MarkReviewed", ctx, doc.ID, entity.DocumentApproved, reviewerID, "").Return(nil)
	profileRepo.On("AddPoints", ctx, uploaderID, 10).Return(&entity.Profile{UserID: uploaderID, Points: 10}, nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == uploaderID && n.Type == entity.NotificationDocumentApproved && n.Body == doc.Title
	})).Return(nil)
	fx.evaluator.On("EvaluateBadges", ctx, uploaderID).Return(nil, nil)
	fx.publisher.On("PublishBadgeEvent", ctx, mock.AnythingOfType("*service.BadgeEvent")).Return(nil)

	err := fx.service.Approve(ctx, doc.ID, reviewerID)

	require.NoError(t, err)
	fx.evaluator.AssertCalled(t, "EvaluateBadges", ctx, uploaderID)
}

func TestDocumentService_Approve_AlreadyReviewed_NoCredit(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	doc := &entity.Document{
		ID:         uuid.New(),
		UploaderID: uuid.New(),
		Status:     entity.DocumentApproved,
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)

	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("MarkReviewed", ctx, doc.ID, entity.DocumentApproved, reviewerID, "").
		Return(repository.ErrDocumentNotPending)
	runTx(fx.txManager, factory)

	err := fx.service.Approve(ctx, doc.ID, reviewerID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDocumentNotPending)
	profileRepo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
	fx.notifier.AssertNotCalled(t, "NotifyUser", mock.Anything, mock.Anything)
	fx.evaluator.AssertNotCalled(t, "EvaluateBadges", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishBadgeEvent", mock.Anything, mock.Anything)
}

func TestDocumentService_Reject_NotifiesUploader(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	uploaderID := uuid.New()
	reviewerID := uuid.New()
	doc := &entity.Document{ID: uuid.New(), UploaderID: uploaderID, Status: entity.DocumentPending}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)

	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("MarkReviewed", ctx, doc.ID, entity.DocumentRejected, reviewerID, "duplicate upload").Return(nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == uploaderID && n.Type == entity.NotificationDocumentRejected && n.Body == "duplicate upload"
	})).Return(nil)

	err := fx.service.Reject(ctx, doc.ID, reviewerID, "duplicate upload")

	require.NoError(t, err)
}

func TestDocumentService_Download_PendingDocument(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	doc := &entity.Document{ID: uuid.New(), Status: entity.DocumentPending, FileURL: "documents/x.pdf"}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	runTx(fx.txManager, factory)

	reader, _, err := fx.service.Download(ctx, doc.ID, uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDocumentNotApproved)
	assert.Nil(t, reader)
	documentRepo.AssertNotCalled(t, "RecordDownload", mock.Anything, mock.Anything)
}

func TestDocumentService_Download_Success(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	userID := uuid.New()
	doc := &entity.Document{ID: uuid.New(), Status: entity.DocumentApproved, FileURL: "documents/notes.pdf"}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("RecordDownload", ctx, mock.MatchedBy(func(d *entity.Download) bool {
		return d.DocumentID == doc.ID && d.UserID == userID
	})).Return(nil)
	runTx(fx.txManager, factory)

	fx.fileStore.On("Open", ctx, "documents/notes.pdf").
		Return(io.NopCloser(strings.NewReader("pdf bytes")), nil)

	reader, returned, err := fx.service.Download(ctx, doc.ID, userID)

	require.NoError(t, err)
	require.NotNil(t, reader)
	defer reader.Close()
	assert.Equal(t, doc, returned)
}

func TestDocumentService_Rate_InvalidScore(t *testing.T) {
	fx := createTestDocumentService(t)

	err := fx.service.Rate(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRating)

	err = fx.service.Rate(context.Background(), uuid.New(), uuid.New(), 6)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRating)
}

func TestDocumentService_Rate_OwnDocument(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	uploaderID := uuid.New()
	doc := &entity.Document{ID: uuid.New(), UploaderID: uploaderID, Status: entity.DocumentApproved}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	runTx(fx.txManager, factory)

	err := fx.service.Rate(ctx, doc.ID, uploaderID, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOwnDocumentRating)
}

func TestDocumentService_Rate_Duplicate(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	raterID := uuid.New()
	doc := &entity.Document{ID: uuid.New(), UploaderID: uuid.New(), Status: entity.DocumentApproved}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("CreateRating", ctx, mock.Anything).Return(repository.ErrDuplicateRating)
	runTx(fx.txManager, factory)

	err := fx.service.Rate(ctx, doc.ID, raterID, 4)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyRated)
	documentRepo.AssertNotCalled(t, "RecalculateRating", mock.Anything, mock.Anything)
}

func TestDocumentService_Rate_Success_RecalculatesAverage(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	raterID := uuid.New()
	doc := &entity.Document{ID: uuid.New(), UploaderID: uuid.New(), Status: entity.DocumentApproved}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("CreateRating", ctx, mock.MatchedBy(func(r *entity.Rating) bool {
		return r.DocumentID == doc.ID && r.UserID == raterID && r.Score == 4
	})).Return(nil)
	documentRepo.On("RecalculateRating", ctx, doc.ID).Return(nil)
	runTx(fx.txManager, factory)

	fx.evaluator.On("EvaluateBadges", ctx, raterID).Return(nil, nil)
	fx.publisher.On("PublishBadgeEvent", ctx, mock.AnythingOfType("*service.BadgeEvent")).Return(nil)

	err := fx.service.Rate(ctx, doc.ID, raterID, 4)

	require.NoError(t, err)
}

func TestDocumentService_Comment_Success(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	userID := uuid.New()
	doc := &entity.Document{ID: uuid.New(), Status: entity.DocumentApproved}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("CreateComment", ctx, mock.MatchedBy(func(c *entity.Comment) bool {
		return c.DocumentID == doc.ID && c.UserID == userID && c.Content == "very helpful"
	})).Return(nil)
	runTx(fx.txManager, factory)

	fx.evaluator.On("EvaluateBadges", ctx, userID).Return(nil, nil)
	fx.publisher.On("PublishBadgeEvent", ctx, mock.AnythingOfType("*service.BadgeEvent")).Return(nil)

	comment, err := fx.service.Comment(ctx, doc.ID, userID, "very helpful")

	require.NoError(t, err)
	assert.Equal(t, "very helpful", comment.Content)
}

func TestDocumentService_ListDocuments_ReturnsTotal(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	filter := repository.DocumentFilter{Status: entity.DocumentApproved}
	docs := []*entity.Document{{ID: uuid.New()}, {ID: uuid.New()}}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("List", ctx, filter, 20, 0).Return(docs, nil)
	documentRepo.On("Count", ctx, filter).Return(int64(12), nil)
	runTx(fx.txManager, factory)

	listed, total, err := fx.service.ListDocuments(ctx, filter, 20, 0)

	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, int64(12), total)
}

func TestDocumentService_GetDocument_BumpsViewCounter(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	doc := &entity.Document{ID: uuid.New(), Title: "Physics Formulas", ViewCount: 7}

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	documentRepo.On("IncrementViews", ctx, doc.ID).Return(nil)
	runTx(fx.txManager, factory)

	got, err := fx.service.GetDocument(ctx, doc.ID)

	require.NoError(t, err)
	assert.Equal(t, 8, got.ViewCount)
	documentRepo.AssertCalled(t, "IncrementViews", ctx, doc.ID)
}

func TestDocumentService_GetDocument_NotFound(t *testing.T) {
	fx := createTestDocumentService(t)

	ctx := context.Background()
	id := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	documentRepo := mockRepo.NewMockDocumentRepository(t)
	factory.On("NewDocumentRepository").Return(documentRepo)
	documentRepo.On("FindByID", ctx, id).Return(nil, repository.ErrDocumentNotFound)
	runTx(fx.txManager, factory)

	got, err := fx.service.GetDocument(ctx, id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDocumentNotFound)
	assert.Nil(t, got)
	documentRepo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}
