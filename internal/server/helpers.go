package server

import (
	"errors"
	"strconv"

	"gymdesk/internal/auth"
	"gymdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a handler helper already wrote the
// response and the caller should stop processing.
var errResponseWritten = errors.New("response already written")

// parseID parses the :id route parameter. On failure it writes a 400
// response and returns errResponseWritten.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// authContext retrieves the verified identity stored by AuthRequired.
func authContext(c *fiber.Ctx) *auth.AuthContext {
	if ac, ok := c.Locals("auth").(*auth.AuthContext); ok {
		return ac
	}
	return nil
}

// respondError maps an application error to its HTTP status. Unknown
// error values become opaque 500s.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.ErrCodeNotFound:
		status = fiber.StatusNotFound
	case models.ErrCodeValidation:
		status = fiber.StatusBadRequest
	case models.ErrCodeConflict:
		status = fiber.StatusConflict
	case models.ErrCodeUnauthorized:
		status = fiber.StatusUnauthorized
	case models.ErrCodeForbidden:
		status = fiber.StatusForbidden
	}
	return models.RespondWithError(c, status, appErr)
}
