package server

import (
	"strings"

	"gymdesk/internal/middleware"
	"gymdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TrainerRequest is the write payload for trainer create and update.
type TrainerRequest struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Specialty string `json:"specialty"`
}

func (r *TrainerRequest) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(r.FirstName) == "" {
		fields["firstName"] = "First name is required."
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["lastName"] = "Last name is required."
	}
	return fields
}

// GetTrainers returns all trainers.
func (s *Server) GetTrainers(c *fiber.Ctx) error {
	trainers, err := s.trainerRepo.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trainers)
}

// GetTrainer returns a single trainer by ID.
func (s *Server) GetTrainer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	trainer, err := s.trainerRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trainer)
}

// CreateTrainer creates a trainer record.
func (s *Server) CreateTrainer(c *fiber.Ctx) error {
	var req TrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if fields := req.validate(); len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("Validation failed.", fields))
	}

	trainer := &models.Trainer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Specialty: req.Specialty,
	}
	if err := s.trainerRepo.Create(c.UserContext(), trainer); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "trainer created",
		"trainer_id", trainer.ID)
	return c.Status(fiber.StatusCreated).JSON(trainer)
}

// UpdateTrainer replaces a trainer's fields. Route and body IDs must agree.
func (s *Server) UpdateTrainer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var req TrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID != id {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("ID mismatch."))
	}
	if fields := req.validate(); len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("Validation failed.", fields))
	}

	trainer := &models.Trainer{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Specialty: req.Specialty,
	}
	if err := s.trainerRepo.Update(c.UserContext(), trainer); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteTrainer removes a trainer.
func (s *Server) DeleteTrainer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.trainerRepo.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "trainer deleted",
		"trainer_id", id)
	return c.SendStatus(fiber.StatusNoContent)
}
