package handler

import (
	"log/slog"
	"net/http"

	"unishare/internal/delivery/http/response"
	"unishare/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BadgeHandler holds dependencies for badge catalog and achievement handlers.
type BadgeHandler struct {
	uc     usecase.BadgeUsecase
	logger *slog.Logger
}

// NewBadgeHandler is the constructor for BadgeHandler, injected by Fx.
func NewBadgeHandler(uc usecase.BadgeUsecase, logger *slog.Logger) *BadgeHandler {
	return &BadgeHandler{uc: uc, logger: logger}
}

// ListCatalog returns every badge in the catalog.
func (h *BadgeHandler) ListCatalog(c echo.Context) error {
	badges, err := h.uc.ListCatalog(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, badges, "")
}

// ListMyBadges returns the badges the caller has earned.
func (h *BadgeHandler) ListMyBadges(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	badges, err := h.uc.ListUserBadges(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, badges, "")
}

// ListUserBadges returns the badges another member has earned.
func (h *BadgeHandler) ListUserBadges(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	badges, err := h.uc.ListUserBadges(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, badges, "")
}
