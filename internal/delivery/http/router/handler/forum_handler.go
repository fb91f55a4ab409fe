package handler

import (
	"log/slog"
	"net/http"

	"unishare/internal/delivery/http/response"
	"unishare/internal/domain/repository"
	"unishare/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ForumHandler holds dependencies for the discussion forum handlers.
type ForumHandler struct {
	uc     usecase.ForumUsecase
	logger *slog.Logger
}

// NewForumHandler is the constructor for ForumHandler, injected by Fx.
func NewForumHandler(uc usecase.ForumUsecase, logger *slog.Logger) *ForumHandler {
	return &ForumHandler{uc: uc, logger: logger}
}

type createThreadRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=256"`
	Content    string `json:"content" validate:"required,min=1,max=8192"`
	CourseCode string `json:"course_code" validate:"omitempty,max=32"`
	Faculty    string `json:"faculty" validate:"omitempty,max=128"`
}

// CreateThread starts a new discussion thread.
func (h *ForumHandler) CreateThread(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createThreadRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid thread input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	thread, err := h.uc.CreateThread(c.Request().Context(), userID, &usecase.CreateThreadInput{
		Title:      req.Title,
		Content:    req.Content,
		CourseCode: req.CourseCode,
		Faculty:    req.Faculty,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, thread, "Thread created")
}

// GetThread returns a thread and counts the view.
func (h *ForumHandler) GetThread(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	thread, err := h.uc.GetThread(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, thread, "")
}

// ListThreads returns threads matching the query filters, pinned first.
func (h *ForumHandler) ListThreads(c echo.Context) error {
	filter := repository.ThreadFilter{
		Category: c.QueryParam("category"),
		Query:    c.QueryParam("q"),
	}

	limit, offset := pagination(c)

	threads, err := h.uc.ListThreads(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, threads, "")
}

type replyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=8192"`
}

// Reply appends a reply to a thread.
func (h *ForumHandler) Reply(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reply input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := h.uc.Reply(c.Request().Context(), threadID, userID, req.Content)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, reply, "Reply posted")
}

// ListReplies returns a thread's replies, oldest first.
func (h *ForumHandler) ListReplies(c echo.Context) error {
	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	limit, offset := pagination(c)

	replies, err := h.uc.ListReplies(c.Request().Context(), threadID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, replies, "")
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

// SetPinned toggles a thread's pinned flag. Moderators only.
func (h *ForumHandler) SetPinned(c echo.Context) error {
	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req pinRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pin input")
	}

	if err := h.uc.SetPinned(c.Request().Context(), threadID, req.Pinned); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"pinned": req.Pinned}, "")
}

type lockRequest struct {
	Locked bool `json:"locked"`
}

// SetLocked toggles a thread's locked flag. Moderators only.
func (h *ForumHandler) SetLocked(c echo.Context) error {
	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req lockRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lock input")
	}

	if err := h.uc.SetLocked(c.Request().Context(), threadID, req.Locked); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"locked": req.Locked}, "")
}

// MarkBestAnswer flags a reply as the accepted answer.
func (h *ForumHandler) MarkBestAnswer(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	replyID, err := pathUUID(c, "replyID")
	if err != nil {
		return err
	}

	if err := h.uc.MarkBestAnswer(c.Request().Context(), threadID, replyID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Best answer marked"}, "")
}
