package handler

import (
	"log/slog"
	"net/http"

	"unishare/internal/delivery/http/response"
	"unishare/internal/domain/entity"
	"unishare/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile and leaderboard handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger}
}

// GetMyProfile returns the caller's profile, creating it on first access.
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.uc.GetOrCreateProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

// GetProfile returns another member's public profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=64"`
	Faculty     *string `json:"faculty" validate:"omitempty,max=128"`
	Bio         *string `json:"bio" validate:"omitempty,max=1024"`
	StudentID   *string `json:"student_id" validate:"omitempty,max=32"`
}

// UpdateMyProfile updates the caller's editable profile fields.
func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), userID, &usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Faculty:     req.Faculty,
		Bio:         req.Bio,
		StudentID:   req.StudentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// GetLeaderboard returns the top profiles by point balance.
func (h *ProfileHandler) GetLeaderboard(c echo.Context) error {
	limit, _ := pagination(c)

	profiles, err := h.uc.GetLeaderboard(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles, "")
}

// VerifyUser marks a member's profile as verified. Admin only.
func (h *ProfileHandler) VerifyUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.SetVerified(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User verified"}, "")
}

type followRequest struct {
	TargetType  string `json:"target_type" validate:"required,oneof=subject faculty"`
	TargetValue string `json:"target_value" validate:"required,max=128"`
}

// Follow subscribes the caller to a subject or faculty.
func (h *ProfileHandler) Follow(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req followRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid follow input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	follow, err := h.uc.Follow(c.Request().Context(), userID, entity.FollowTarget(req.TargetType), req.TargetValue)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, follow, "Follow created")
}

// Unfollow removes one of the caller's subscriptions.
func (h *ProfileHandler) Unfollow(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req followRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid follow input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Unfollow(c.Request().Context(), userID, entity.FollowTarget(req.TargetType), req.TargetValue); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Follow removed"}, "")
}

// ListMyFollows returns the caller's subscriptions, newest first.
func (h *ProfileHandler) ListMyFollows(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	follows, err := h.uc.ListFollows(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, follows, "")
}

type pointsRequest struct {
	Amount int    `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"omitempty,max=256"`
}

// CreditPoints adds points to a member's balance. Admin only.
func (h *ProfileHandler) CreditPoints(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req pointsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid points input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.uc.CreditPoints(c.Request().Context(), userID, req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	h.logger.Info("points credited by admin", "userID", userID, "amount", req.Amount, "reason", req.Reason)

	return response.Success(c, http.StatusOK, profile, "Points credited")
}

// DebitPoints removes points from a member's balance. Admin only.
func (h *ProfileHandler) DebitPoints(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req pointsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid points input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.uc.DebitPoints(c.Request().Context(), userID, req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	h.logger.Info("points debited by admin", "userID", userID, "amount", req.Amount, "reason", req.Reason)

	return response.Success(c, http.StatusOK, profile, "Points debited")
}
