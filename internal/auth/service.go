package auth

import (
	"context"

	"gymdesk/internal/models"
	"gymdesk/internal/repository"
	"gymdesk/internal/validation"
)

// Service combines credential verification and registration with token
// issuance. It performs at most one user lookup per decision and never
// writes outside of Register.
type Service struct {
	users     repository.UserRepository
	authority *Authority
}

// NewService returns a Service backed by the given user store and authority.
func NewService(users repository.UserRepository, authority *Authority) *Service {
	return &Service{users: users, authority: authority}
}

// Authority exposes the token authority for middleware wiring.
func (s *Service) Authority() *Authority {
	return s.authority
}

// Verify checks an email/password pair against the credential store.
// Unknown email and wrong password both return ErrInvalidCredentials;
// no lockout counters are kept.
func (s *Service) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new identity with the "User" role. The "Admin" role
// is never assigned through this path. Validation failures carry
// field-level reasons.
func (s *Service) Register(ctx context.Context, email, password, confirmPassword string) (*models.User, error) {
	fields := map[string]string{}
	if err := validation.ValidateEmail(email); err != nil {
		fields["email"] = err.Error()
	}
	if err := validation.ValidatePassword(password); err != nil {
		fields["password"] = err.Error()
	}
	if confirmPassword != password {
		fields["confirmPassword"] = "Passwords do not match."
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError("Registration failed.", fields)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewFieldValidationError("Registration failed.",
			map[string]string{"email": "Email is already taken."})
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.AddRole(ctx, user, models.RoleUser); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a session token in one step.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.authority.Issue(user)
}
