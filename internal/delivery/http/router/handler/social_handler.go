package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/response"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SocialHandler serves the review and feedback endpoints.
type SocialHandler struct {
	uc     usecase.SocialUsecase
	logger *slog.Logger
}

// NewSocialHandler is the constructor for SocialHandler.
func NewSocialHandler(uc usecase.SocialUsecase, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{
		uc:     uc,
		logger: logger,
	}
}

type createReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type createFeedbackRequest struct {
	Target   string `json:"target" form:"target" validate:"required"`
	TargetID string `json:"targetId" form:"targetId" validate:"required"`
	Comment  string `json:"comment" form:"comment" validate:"required"`
}

type updateFeedbackRequest struct {
	Comment *string `json:"comment" form:"comment"`
}

// CreateStoreProductReview lets a buyer rate a retail product.
func (h *SocialHandler) CreateStoreProductReview(c echo.Context) error {
	return h.createReview(c, entity.ProductStore)
}

// CreateFactoryProductReview lets a store owner rate a wholesale product.
func (h *SocialHandler) CreateFactoryProductReview(c echo.Context) error {
	return h.createReview(c, entity.ProductFactory)
}

func (h *SocialHandler) createReview(c echo.Context, kind entity.ProductKind) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input createReviewRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	productID, err := optionalUUID(input.ProductID)
	if err != nil {
		return err
	}
	if productID == nil {
		return domainerrors.ErrValidationFailed.WithDetails("productId is required")
	}

	output, err := h.uc.CreateReview(c.Request().Context(), claims.UserID, claims.Role, usecase.CreateReviewInput{
		ProductKind: kind,
		ProductID:   *productID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Review created")
}

// ListStoreProductReviews lists the reviews of one retail product.
func (h *SocialHandler) ListStoreProductReviews(c echo.Context) error {
	return h.listReviews(c, entity.ProductStore)
}

// ListFactoryProductReviews lists the reviews of one wholesale product.
func (h *SocialHandler) ListFactoryProductReviews(c echo.Context) error {
	return h.listReviews(c, entity.ProductFactory)
}

func (h *SocialHandler) listReviews(c echo.Context, kind entity.ProductKind) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.ListReviews(c.Request().Context(), kind, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Reviews retrieved")
}

// UpdateReview changes the caller's own review.
func (h *SocialHandler) UpdateReview(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input updateReviewRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	output, err := h.uc.UpdateReview(c.Request().Context(), claims.UserID, id, usecase.UpdateReviewInput{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Review updated")
}

// DeleteReview removes the caller's own review.
func (h *SocialHandler) DeleteReview(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReview(c.Request().Context(), claims.UserID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted")
}

// CreateFeedback leaves a comment on a store, factory, or product, with
// an optional multipart "image".
func (h *SocialHandler) CreateFeedback(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input createFeedbackRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid feedback input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	targetID, err := optionalUUID(input.TargetID)
	if err != nil {
		return err
	}
	if targetID == nil {
		return domainerrors.ErrValidationFailed.WithDetails("targetId is required")
	}

	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}

	output, err := h.uc.CreateFeedback(c.Request().Context(), claims.UserID, claims.Role, usecase.CreateFeedbackInput{
		Target:   entity.FeedbackTarget(input.Target),
		TargetID: *targetID,
		Comment:  input.Comment,
		Image:    image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Feedback created")
}

// ListFeedback lists the feedback left on one target.
func (h *SocialHandler) ListFeedback(c echo.Context) error {
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.ListFeedback(c.Request().Context(), entity.FeedbackTarget(c.Param("target")), targetID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Feedback retrieved")
}

// UpdateFeedback changes the caller's own feedback.
func (h *SocialHandler) UpdateFeedback(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input updateFeedbackRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid feedback input")
	}

	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}

	output, err := h.uc.UpdateFeedback(c.Request().Context(), claims.UserID, id, usecase.UpdateFeedbackInput{
		Comment: input.Comment,
		Image:   image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Feedback updated")
}

// DeleteFeedback removes the caller's own feedback.
func (h *SocialHandler) DeleteFeedback(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteFeedback(c.Request().Context(), claims.UserID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Feedback deleted")
}
