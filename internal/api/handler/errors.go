package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// errorResponse is the standard envelope returned on all 4xx/5xx responses.
// Details carries per-field messages for validation failures.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// respondError maps a domain error onto its HTTP status and renders the
// error envelope. Unknown errors come back as a generic 500; the central
// error handler logs the cause.
func respondError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Details: ve.Details})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, domain.ErrRoleMismatch):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "role does not match credentials"})
	case errors.Is(err, domain.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid role"})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
	case errors.Is(err, domain.ErrInvalidStatus):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid status value"})
	case errors.Is(err, domain.ErrOrderFinalized):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "order already finalized"})
	case errors.Is(err, domain.ErrUploadFailed):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "image upload failed"})
	}

	// let the central error handler log and render it
	return err
}
