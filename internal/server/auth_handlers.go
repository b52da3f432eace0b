package server

import (
	"errors"

	"gymdesk/internal/auth"
	"gymdesk/internal/middleware"
	"gymdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the credential pair presented at login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the self-service signup fields.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password produce the same response so callers cannot probe
// for registered accounts.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	resp, err := s.authSvc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			middleware.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			middleware.Logger.WarnContext(c.UserContext(), "login rejected",
				"email", req.Email)
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid email or password."))
		}
		return respondError(c, err)
	}

	middleware.LoginAttempts.WithLabelValues("success").Inc()
	middleware.TokensIssued.Inc()
	middleware.Logger.InfoContext(c.UserContext(), "login succeeded",
		"email", resp.Email, "roles", resp.Roles)

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Register creates a new identity with the "User" role and returns a
// token for it, so signup doubles as first login.
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authSvc.Register(c.UserContext(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := s.authSvc.Authority().Issue(user)
	if err != nil {
		return respondError(c, err)
	}

	middleware.TokensIssued.Inc()
	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		"email", user.Email)

	return c.Status(fiber.StatusOK).JSON(resp)
}
