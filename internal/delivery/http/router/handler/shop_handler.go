package handler

import (
	"log/slog"
	"net/http"

	"unishare/internal/delivery/http/response"
	"unishare/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ShopHandler holds dependencies for the points redemption shop handlers.
type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, logger: logger}
}

// ListItems returns the active catalog ordered by cost.
func (h *ShopHandler) ListItems(c echo.Context) error {
	items, err := h.uc.ListItems(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "")
}

// Purchase redeems a shop item against the caller's point balance.
func (h *ShopHandler) Purchase(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	purchase, err := h.uc.Purchase(c.Request().Context(), userID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, purchase, "Purchase complete")
}

// ListPurchases returns the caller's purchase history, newest first.
func (h *ShopHandler) ListPurchases(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit, offset := pagination(c)

	purchases, err := h.uc.ListPurchases(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchases, "")
}

// GetVoucher renders the QR voucher for one of the caller's purchases.
func (h *ShopHandler) GetVoucher(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	purchaseID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.GetVoucher(c.Request().Context(), userID, purchaseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
