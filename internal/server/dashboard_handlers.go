package server

import (
	"gymdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns role-dependent overview data. Admins see fleet
// counts; regular users see their own profile state and nothing about
// other members.
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	ac := authContext(c)
	if ac == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	stats := models.DashboardStats{}

	if ac.HasRole(models.RoleAdmin) {
		members, err := s.memberRepo.Count(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		trainers, err := s.trainerRepo.Count(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		plans, err := s.planRepo.Count(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		stats.TotalMembers = &members
		stats.TotalTrainers = &trainers
		stats.TotalMembershipTypes = &plans
		return c.JSON(stats)
	}

	member, err := s.memberRepo.GetByEmail(c.UserContext(), ac.Email)
	if err != nil {
		return respondError(c, err)
	}
	complete := member != nil
	stats.IsProfileComplete = &complete
	if member != nil {
		dto := member.ToDTO()
		stats.MyProfile = &dto
	}
	return c.JSON(stats)
}
