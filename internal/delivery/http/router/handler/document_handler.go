package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"unishare/internal/delivery/http/response"
	"unishare/internal/domain/entity"
	"unishare/internal/domain/repository"
	"unishare/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxUploadSize bounds document uploads at 50 MiB.
const maxUploadSize = 50 << 20

// DocumentHandler holds dependencies for document sharing handlers.
type DocumentHandler struct {
	uc     usecase.DocumentUsecase
	logger *slog.Logger
}

// NewDocumentHandler is the constructor for DocumentHandler, injected by Fx.
func NewDocumentHandler(uc usecase.DocumentUsecase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, logger: logger}
}

// Upload accepts a multipart document upload and creates a pending document.
func (h *DocumentHandler) Upload(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "MISSING_FILE", "A document file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Document exceeds the size limit", "")
	}

	title := c.FormValue("title")
	if title == "" {
		return response.BadRequest(c, "MISSING_TITLE", "A document title is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}

	doc, err := h.uc.Upload(c.Request().Context(), userID, &usecase.UploadDocumentInput{
		Title:       title,
		Description: c.FormValue("description"),
		Faculty:     c.FormValue("faculty"),
		Subject:     c.FormValue("subject"),
		Category:    c.FormValue("category"),
		Tags:        tags,
		Year:        c.FormValue("year"),
		FileName:    fileHeader.Filename,
		FileType:    fileHeader.Header.Get("Content-Type"),
		File:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, doc, "Document submitted for review")
}

// Get returns a single document.
func (h *DocumentHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.uc.GetDocument(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, doc, "")
}

type documentListData struct {
	Documents []*entity.Document `json:"documents"`
	Total     int64              `json:"total"`
}

// List returns approved documents matching the query filters.
func (h *DocumentHandler) List(c echo.Context) error {
	filter := repository.DocumentFilter{
		Status:  entity.DocumentApproved,
		Subject: c.QueryParam("subject"),
		Faculty: c.QueryParam("faculty"),
		Query:   c.QueryParam("q"),
		Sort:    c.QueryParam("sort"),
	}

	if raw := c.QueryParam("uploader"); raw != "" {
		uploaderID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_UPLOADER", "Invalid uploader ID")
		}
		filter.UploaderID = uploaderID
	}

	limit, offset := pagination(c)

	docs, total, err := h.uc.ListDocuments(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, documentListData{Documents: docs, Total: total}, "")
}

// ListPending returns the moderation queue. Moderators only.
func (h *DocumentHandler) ListPending(c echo.Context) error {
	limit, offset := pagination(c)

	docs, total, err := h.uc.ListDocuments(c.Request().Context(), repository.DocumentFilter{
		Status: entity.DocumentPending,
	}, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, documentListData{Documents: docs, Total: total}, "")
}

// Approve approves a pending document. Moderators only.
func (h *DocumentHandler) Approve(c echo.Context) error {
	reviewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Approve(c.Request().Context(), documentID, reviewerID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Document approved"}, "")
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,max=512"`
}

// Reject rejects a pending document with a reason. Moderators only.
func (h *DocumentHandler) Reject(c echo.Context) error {
	reviewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rejection input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Reject(c.Request().Context(), documentID, reviewerID, req.Reason); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Document rejected"}, "")
}

// Download streams the stored file of an approved document.
func (h *DocumentHandler) Download(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	reader, doc, err := h.uc.Download(c.Request().Context(), documentID, userID)
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.FileName+`"`)
	c.Response().Header().Set(echo.HeaderContentType, doc.FileType)
	c.Response().WriteHeader(http.StatusOK)

	_, err = io.Copy(c.Response(), reader)

	return errors.WithStack(err)
}

type rateRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// Rate scores an approved document.
func (h *DocumentHandler) Rate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Rate(c.Request().Context(), documentID, userID, req.Score); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"message": "Rating recorded"}, "")
}

// MyRating returns the caller's rating of a document, null when unrated.
func (h *DocumentHandler) MyRating(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	rating, err := h.uc.GetMyRating(c.Request().Context(), documentID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rating, "")
}

type commentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2048"`
}

// Comment appends a comment to a document.
func (h *DocumentHandler) Comment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.uc.Comment(c.Request().Context(), documentID, userID, req.Content)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, comment, "Comment added")
}

// ListComments returns a document's comments.
func (h *DocumentHandler) ListComments(c echo.Context) error {
	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	limit, offset := pagination(c)

	comments, err := h.uc.ListComments(c.Request().Context(), documentID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comments, "")
}

// PlatformStats returns the public landing-page aggregate.
func (h *DocumentHandler) PlatformStats(c echo.Context) error {
	stats, err := h.uc.PlatformStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// ReviewStats returns the moderation dashboard aggregate. Moderators only.
func (h *DocumentHandler) ReviewStats(c echo.Context) error {
	stats, err := h.uc.ReviewStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}
