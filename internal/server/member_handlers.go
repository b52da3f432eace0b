package server

import (
	"strings"
	"time"

	"gymdesk/internal/middleware"
	"gymdesk/internal/models"
	"gymdesk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// MemberRequest is the write payload for member create and update.
type MemberRequest struct {
	ID               uint      `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phoneNumber"`
	JoinDate         time.Time `json:"joinDate"`
	MembershipTypeID uint      `json:"membershipTypeId"`
}

func (r *MemberRequest) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(r.FirstName) == "" {
		fields["firstName"] = "First name is required."
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["lastName"] = "Last name is required."
	}
	if r.Email != "" {
		if err := validation.ValidateEmail(r.Email); err != nil {
			fields["email"] = err.Error()
		}
	}
	if r.MembershipTypeID == 0 {
		fields["membershipTypeId"] = "Membership type is required."
	}
	return fields
}

// GetMembers returns all members with their plan names denormalized.
func (s *Server) GetMembers(c *fiber.Ctx) error {
	members, err := s.memberRepo.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	dtos := make([]models.MemberDTO, 0, len(members))
	for i := range members {
		dtos = append(dtos, members[i].ToDTO())
	}
	return c.JSON(dtos)
}

// GetMember returns a single member by ID.
func (s *Server) GetMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	member, err := s.memberRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(member.ToDTO())
}

// GetMyMemberProfile returns the member record whose email matches the
// caller's token. Authorization to it is established solely by that
// match, never by a client-supplied ID.
func (s *Server) GetMyMemberProfile(c *fiber.Ctx) error {
	ac := authContext(c)
	if ac == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	member, err := s.memberRepo.GetByEmail(c.UserContext(), ac.Email)
	if err != nil {
		return respondError(c, err)
	}
	if member == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Member profile not found. Please contact an administrator."))
	}
	return c.JSON(member.ToDTO())
}

// CreateMember creates a member record.
func (s *Server) CreateMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if fields := req.validate(); len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("Validation failed.", fields))
	}

	joinDate := req.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now().UTC()
	}

	member := &models.Member{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		JoinDate:         joinDate,
		MembershipTypeID: req.MembershipTypeID,
	}
	if err := s.memberRepo.Create(c.UserContext(), member); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "member created",
		"member_id", member.ID)
	return c.Status(fiber.StatusCreated).JSON(member.ToDTO())
}

// UpdateMember replaces a member's fields. The route ID must match the
// body ID. A member deleted between read and write surfaces as 404.
func (s *Server) UpdateMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var req MemberRequest
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

	member := &models.Member{
		ID:               id,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		JoinDate:         req.JoinDate,
		MembershipTypeID: req.MembershipTypeID,
	}
	if err := s.memberRepo.Update(c.UserContext(), member); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMember removes a member. Deleting an already-deleted member is 404.
func (s *Server) DeleteMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.memberRepo.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "member deleted",
		"member_id", id)
	return c.SendStatus(fiber.StatusNoContent)
}
