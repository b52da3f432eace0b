package auth

import (
	"context"
	"testing"

	"gymdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddRole(ctx context.Context, user *models.User, roleName string) error {
	args := m.Called(ctx, user, roleName)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureRole(ctx context.Context, name string) (*models.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func TestVerifyUniformFailure(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name      string
		email     string
		password  string
		mockSetup func(repo *MockUserRepository)
	}{
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "whatever",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong-password",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{ID: 1, Email: "jane@example.com", PasswordHash: hash}, nil)
			},
		},
	}

	// Both cases must produce the exact same sentinel so the HTTP layer
	// cannot leak which one occurred.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.mockSetup(repo)
			svc := NewService(repo, NewAuthority(testConfig()))

			user, err := svc.Verify(ctx, tt.email, tt.password)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestVerifySuccess(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{ID: 1, Email: "jane@example.com", PasswordHash: hash}, nil)
	svc := NewService(repo, NewAuthority(testConfig()))

	user, err := svc.Verify(ctx, "jane@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		email           string
		password        string
		confirmPassword string
		wantField       string
	}{
		{name: "bad email", email: "not-an-email", password: "secret1", confirmPassword: "secret1", wantField: "email"},
		{name: "short password", email: "jane@example.com", password: "abc", confirmPassword: "abc", wantField: "password"},
		{name: "mismatched confirmation", email: "jane@example.com", password: "secret1", confirmPassword: "secret2", wantField: "confirmPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := NewService(repo, NewAuthority(testConfig()))

			user, err := svc.Register(ctx, tt.email, tt.password, tt.confirmPassword)
			assert.Nil(t, user)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.ErrCodeValidation, appErr.Code)
			assert.Contains(t, appErr.Fields, tt.wantField)
			repo.AssertNotCalled(t, "Create")
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&models.User{ID: 7, Email: "taken@example.com"}, nil)
	svc := NewService(repo, NewAuthority(testConfig()))

	user, err := svc.Register(ctx, "taken@example.com", "secret1", "secret1")
	assert.Nil(t, user)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "email")
	repo.AssertNotCalled(t, "Create")
}

func TestRegisterAssignsUserRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("AddRole", mock.Anything, mock.Anything, models.RoleUser).Return(nil)
	svc := NewService(repo, NewAuthority(testConfig()))

	user, err := svc.Register(ctx, "new@example.com", "secret1", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)

	// The stored credential is a hash, never the plaintext.
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, CheckPassword(user.PasswordHash, "secret1"))

	repo.AssertCalled(t, "AddRole", mock.Anything, mock.Anything, models.RoleUser)
	repo.AssertNotCalled(t, "AddRole", mock.Anything, mock.Anything, models.RoleAdmin)
}

func TestLoginIssuesToken(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{
			ID:           1,
			Email:        "jane@example.com",
			PasswordHash: hash,
			Roles:        []models.Role{{ID: 1, Name: models.RoleUser}},
		}, nil)
	svc := NewService(repo, NewAuthority(testConfig()))

	resp, err := svc.Login(ctx, "jane@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, []string{models.RoleUser}, resp.Roles)

	authCtx, err := svc.Authority().Authorize(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), authCtx.UserID)
}
