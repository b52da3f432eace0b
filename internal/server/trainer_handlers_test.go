package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"gymdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTrainer(t *testing.T, s *Server) *models.Trainer {
	t.Helper()
	trainer := &models.Trainer{FirstName: "Max", LastName: "Stone", Specialty: "Boxing"}
	require.NoError(t, s.trainerRepo.Create(context.Background(), trainer))
	return trainer
}

func TestTrainerReadsOpenToAnyAuthenticated(t *testing.T) {
	s, app := newTestServer(t)
	trainer := createTrainer(t, s)
	userToken := registerUser(t, app, "user@example.com", "secret1").Token

	resp := doJSON(t, app, http.MethodGet, "/api/trainers/", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Trainer](t, resp), 1)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/trainers/%d", trainer.ID), userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Boxing", decodeBody[models.Trainer](t, resp).Specialty)

	// Unauthenticated reads stay closed.
	resp = doJSON(t, app, http.MethodGet, "/api/trainers/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTrainerWritesRequireAdmin(t *testing.T) {
	s, app := newTestServer(t)
	trainer := createTrainer(t, s)
	userToken := registerUser(t, app, "user@example.com", "secret1").Token

	payload := map[string]any{
		"id":        trainer.ID,
		"firstName": "Max",
		"lastName":  "Stone",
		"specialty": "CrossFit",
	}

	resp := doJSON(t, app, http.MethodPost, "/api/trainers/", userToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/trainers/%d", trainer.ID), userToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/trainers/%d", trainer.ID), userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTrainerCRUDAsAdmin(t *testing.T) {
	_, app := newTestServer(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/trainers/", token, map[string]any{
		"firstName": "Max",
		"lastName":  "Stone",
		"specialty": "Boxing",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Trainer](t, resp)
	require.NotZero(t, created.ID)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/trainers/%d", created.ID), token, map[string]any{
		"id":        created.ID,
		"firstName": "Max",
		"lastName":  "Stone",
		"specialty": "CrossFit",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/trainers/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CrossFit", decodeBody[models.Trainer](t, resp).Specialty)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/trainers/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/trainers/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Trainer not found.", decodeBody[models.ErrorResponse](t, resp).Error)
}

func TestTrainerUpdateIDMismatch(t *testing.T) {
	s, app := newTestServer(t)
	trainer := createTrainer(t, s)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/trainers/%d", trainer.ID), adminToken(t, app), map[string]any{
		"id":        trainer.ID + 7,
		"firstName": "Max",
		"lastName":  "Stone",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ID mismatch.", decodeBody[models.ErrorResponse](t, resp).Error)
}
