package server

import (
	"strings"

	"gymdesk/internal/middleware"
	"gymdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MembershipTypeRequest is the write payload for plan create and update.
type MembershipTypeRequest struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Cost             int    `json:"cost"`
	DurationInMonths int    `json:"durationInMonths"`
}

func (r *MembershipTypeRequest) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "Name is required."
	}
	if r.Cost < 0 {
		fields["cost"] = "Cost must not be negative."
	}
	if r.DurationInMonths <= 0 {
		fields["durationInMonths"] = "Duration must be at least one month."
	}
	return fields
}

// GetMembershipTypes returns all plans.
func (s *Server) GetMembershipTypes(c *fiber.Ctx) error {
	plans, err := s.planRepo.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

// GetMembershipType returns a single plan by ID.
func (s *Server) GetMembershipType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	plan, err := s.planRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// CreateMembershipType creates a plan.
func (s *Server) CreateMembershipType(c *fiber.Ctx) error {
	var req MembershipTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if fields := req.validate(); len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("Validation failed.", fields))
	}

	plan := &models.MembershipType{
		Name:             req.Name,
		Cost:             req.Cost,
		DurationInMonths: req.DurationInMonths,
	}
	if err := s.planRepo.Create(c.UserContext(), plan); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "membership type created",
		"membership_type_id", plan.ID)
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// UpdateMembershipType replaces a plan's fields. Route and body IDs must agree.
func (s *Server) UpdateMembershipType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var req MembershipTypeRequest
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

	plan := &models.MembershipType{
		ID:               id,
		Name:             req.Name,
		Cost:             req.Cost,
		DurationInMonths: req.DurationInMonths,
	}
	if err := s.planRepo.Update(c.UserContext(), plan); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMembershipType removes a plan and every member enrolled in it.
// The cascade is intentional and mirrors the data model's ownership of
// members by their plan.
func (s *Server) DeleteMembershipType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.planRepo.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.WarnContext(c.UserContext(), "membership type deleted with cascade",
		"membership_type_id", id)
	return c.SendStatus(fiber.StatusNoContent)
}
