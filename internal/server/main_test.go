package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/config"
	"gymdesk/internal/database"
	"gymdesk/internal/models"
	"gymdesk/internal/repository"
	"gymdesk/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testServerConfig() *config.Config {
	return &config.Config{
		Port:             "8080",
		JWTSecret:        "test-secret-key-for-handler-tests-only",
		JWTIssuer:        "gymdesk-api",
		JWTAudience:      "gymdesk-client",
		JWTExpireMinutes: 60,
		Env:              "test",
	}
}

// newTestServer wires a Server against an isolated in-memory database
// with the role catalog and admin identity bootstrapped.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, seed.Bootstrap(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := testServerConfig()
	userRepo := repository.NewUserRepository(db)
	s := &Server{
		config:      cfg,
		db:          db,
		authSvc:     auth.NewService(userRepo, auth.NewAuthority(cfg)),
		userRepo:    userRepo,
		memberRepo:  repository.NewMemberRepository(db),
		trainerRepo: repository.NewTrainerRepository(db),
		planRepo:    repository.NewMembershipTypeRepository(db),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// loginAs returns a bearer token for the given credentials.
func loginAs(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[models.TokenResponse](t, resp).Token
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	return loginAs(t, app, seed.AdminEmail, seed.AdminPassword)
}

// registerUser signs up a fresh account and returns its token.
func registerUser(t *testing.T, app *fiber.App, email, password string) models.TokenResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[models.TokenResponse](t, resp)
}

func createPlan(t *testing.T, s *Server, name string) *models.MembershipType {
	t.Helper()
	plan := &models.MembershipType{Name: name, Cost: 75, DurationInMonths: 3}
	require.NoError(t, s.planRepo.Create(context.Background(), plan))
	return plan
}

func createMember(t *testing.T, s *Server, email string, planID uint) *models.Member {
	t.Helper()
	member := &models.Member{
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            email,
		PhoneNumber:      "555-0100",
		JoinDate:         time.Now().UTC(),
		MembershipTypeID: planID,
	}
	require.NoError(t, s.memberRepo.Create(context.Background(), member))
	return member
}
