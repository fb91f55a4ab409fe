package impl

import (
	"context"
	"testing"

	"unishare/internal/domain/entity"
	domainerrors "unishare/internal/domain/errors"
	"unishare/internal/domain/repository"
	mockRepo "unishare/internal/mocks/repository"
	mockUsecase "unishare/internal/mocks/usecase"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type forumServiceFixtures struct {
	service   usecase.ForumUsecase
	txManager *mockRepo.MockTransactionManager
	notifier  *mockUsecase.MockNotificationUsecase
}

func createTestForumService(t *testing.T) forumServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	notifier := mockUsecase.NewMockNotificationUsecase(t)
	service := NewForumService(txManager, notifier, testLogger())

	return forumServiceFixtures{
		service:   service,
		txManager: txManager,
		notifier:  notifier,
	}
}

func TestForumService_CreateThread_Success(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	authorID := uuid.New()
	input := &usecase.CreateThreadInput{
		Title:      "Anyone have past exams for CS200?",
		Content:    "Looking for practice material before finals.",
		CourseCode: "CS200",
		Faculty:    "Engineering",
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	forumRepo.On("CreateThread", ctx, mock.MatchedBy(func(th *entity.ForumThread) bool {
		return th.AuthorID == authorID && th.CourseCode == "CS200"
	})).Return(nil)
	runTx(fx.txManager, factory)

	thread, err := fx.service.CreateThread(ctx, authorID, input)

	require.NoError(t, err)
	assert.Equal(t, "CS200", thread.CourseCode)
}

func TestForumService_GetThread_BumpsViewCounter(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	thread := &entity.ForumThread{ID: uuid.New(), Title: "Study group", ViewCount: 7}

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	forumRepo.On("FindThreadByID", ctx, thread.ID).Return(thread, nil)
	forumRepo.On("IncrementViews", ctx, thread.ID).Return(nil)
	runTx(fx.txManager, factory)

	got, err := fx.service.GetThread(ctx, thread.ID)

	require.NoError(t, err)
	assert.Equal(t, 8, got.ViewCount)
}

func TestForumService_Reply_LockedThread(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	thread := &entity.ForumThread{ID: uuid.New(), IsLocked: true}

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	forumRepo.On("FindThreadByID", ctx, thread.ID).Return(thread, nil)
	runTx(fx.txManager, factory)

	reply, err := fx.service.Reply(ctx, thread.ID, uuid.New(), "late answer")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrThreadLocked)
	assert.Nil(t, reply)
	forumRepo.AssertNotCalled(t, "CreateReply", mock.Anything, mock.Anything)
}

func TestForumService_Reply_NotifiesThreadAuthor(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	authorID := uuid.New()
	replierID := uuid.New()
	thread := &entity.ForumThread{ID: uuid.New(), Title: "Lab report format?", AuthorID: authorID}

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)

	forumRepo.On("FindThreadByID", ctx, thread.ID).Return(thread, nil)
	forumRepo.On("CreateReply", ctx, mock.MatchedBy(func(r *entity.ForumReply) bool {
		return r.ThreadID == thread.ID && r.UserID == replierID
	})).Return(nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == authorID && n.Type == entity.NotificationForumReply && n.Body == thread.Title
	})).Return(nil)

	reply, err := fx.service.Reply(ctx, thread.ID, replierID, "use the template from week 2")

	require.NoError(t, err)
	assert.Equal(t, replierID, reply.UserID)
}

func TestForumService_Reply_OwnThread_NoNotification(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	authorID := uuid.New()
	thread := &entity.ForumThread{ID: uuid.New(), AuthorID: authorID}

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	forumRepo.On("FindThreadByID", ctx, thread.ID).Return(thread, nil)
	forumRepo.On("CreateReply", ctx, mock.Anything).Return(nil)
	runTx(fx.txManager, factory)

	_, err := fx.service.Reply(ctx, thread.ID, authorID, "bumping my own thread")

	require.NoError(t, err)
	fx.notifier.AssertNotCalled(t, "NotifyUser", mock.Anything, mock.Anything)
}

func TestForumService_MarkBestAnswer_ByThreadAuthor(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	authorID := uuid.New()
	replierID := uuid.New()
	thread := &entity.ForumThread{ID: uuid.New(), AuthorID: authorID}
	replyID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	forumRepo.On("FindThreadByID", ctx, thread.ID).Return(thread, nil)
	forumRepo.On("FindReplyByID", ctx, replyID).
		Return(&entity.ForumReply{ID: replyID, ThreadID: thread.ID, UserID: replierID}, nil)
	forumRepo.On("MarkBestAnswer", ctx, thread.ID, replyID).Return(nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == replierID && n.Type == entity.NotificationBestAnswer
	})).Return(nil)

	err := fx.service.MarkBestAnswer(ctx, thread.ID, replyID, authorID)

	require.NoError(t, err)
}

func TestForumService_MarkBestAnswer_ByModerator(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	moderatorID := uuid.New()
	thread := &entity.ForumThread{ID: uuid.New(), AuthorID: uuid.New()}
	replyID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	factory.On("NewProfileRepository").Return(profileRepo)

	forumRepo.On("FindThreadByID", ctx, thread.ID).Return(thread, nil)
	profileRepo.On("FindByUserID", ctx, moderatorID).
		Return(&entity.Profile{UserID: moderatorID, Role: entity.RoleModerator}, nil)
	forumRepo.On("FindReplyByID", ctx, replyID).
		Return(&entity.ForumReply{ID: replyID, ThreadID: thread.ID, UserID: uuid.New()}, nil)
	forumRepo.On("MarkBestAnswer", ctx, thread.ID, replyID).Return(nil)
	runTx(fx.txManager, factory)

	fx.notifier.On("NotifyUser", ctx, mock.Anything).Return(nil)

	err := fx.service.MarkBestAnswer(ctx, thread.ID, replyID, moderatorID)

	require.NoError(t, err)
}

func TestForumService_MarkBestAnswer_ForbiddenForOtherMembers(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	strangerID := uuid.New()
	thread := &entity.ForumThread{ID: uuid.New(), AuthorID: uuid.New()}
	replyID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	factory.On("NewProfileRepository").Return(profileRepo)

	forumRepo.On("FindThreadByID", ctx, thread.ID).Return(thread, nil)
	profileRepo.On("FindByUserID", ctx, strangerID).
		Return(&entity.Profile{UserID: strangerID, Role: entity.RoleStudent}, nil)
	runTx(fx.txManager, factory)

	err := fx.service.MarkBestAnswer(ctx, thread.ID, replyID, strangerID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	forumRepo.AssertNotCalled(t, "MarkBestAnswer", mock.Anything, mock.Anything, mock.Anything)
}

func TestForumService_ListThreads(t *testing.T) {
	fx := createTestForumService(t)

	ctx := context.Background()
	filter := repository.ThreadFilter{Category: "CS200"}
	threads := []*entity.ForumThread{{ID: uuid.New(), IsPinned: true}, {ID: uuid.New()}}

	factory := mockRepo.NewMockRepositoryFactory(t)
	forumRepo := mockRepo.NewMockForumRepository(t)
	factory.On("NewForumRepository").Return(forumRepo)
	forumRepo.On("ListThreads", ctx, filter, 20, 0).Return(threads, nil)
	runTx(fx.txManager, factory)

	got, err := fx.service.ListThreads(ctx, filter, 20, 0)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
