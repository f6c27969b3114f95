package handlers_test

import (
	"net/http"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCurrentUser(t *testing.T) {
	env := newTestEnv(t)

	user := env.provision("auth0|ana", "ana@example.com")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "auth0|ana", user.Auth0ID, "external id comes from the token")
	assert.Equal(t, "ana@example.com", user.Email)

	again := env.doJSON(http.MethodPost, "/api/my/user", "auth0|ana", map[string]string{"email": "changed@example.com"})
	assert.Equal(t, http.StatusOK, again.Code)
	assert.Empty(t, again.Body.String())

	got := env.doJSON(http.MethodGet, "/api/my/user", "auth0|ana", nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "ana@example.com", decode[models.User](t, got).Email)
}

func TestCreateCurrentUser_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/my/user", "auth0|ana", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"email must be a valid email"}`, w.Body.String())

	w = env.doJSON(http.MethodPost, "/api/my/user", "", map[string]string{"email": "a@example.com"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCurrentUser_RequiresProvisionedUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodGet, "/api/my/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.doJSON(http.MethodGet, "/api/my/user", "auth0|ghost", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.provision("auth0|ana", "ana@example.com")

	w := env.doJSON(http.MethodPut, "/api/my/user", "auth0|ana", map[string]string{
		"name": "Ana", "addressLine1": "1 Rizal Ave", "country": "PH",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"city is required"}`, w.Body.String())

	w = env.doJSON(http.MethodPut, "/api/my/user", "auth0|ana", map[string]string{
		"name": "Ana", "addressLine1": "1 Rizal Ave", "city": "Manila", "country": "PH",
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[models.User](t, w)
	assert.Equal(t, "Manila", user.City)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestHealthAndLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(http.MethodGet, "/api/order/lifecycle", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Statuses       []string `json:"statuses"`
		TerminalStates []string `json:"terminal_states"`
		Transitions    []struct {
			From  string `json:"from"`
			To    string `json:"to"`
			Actor string `json:"actor"`
		} `json:"transitions"`
	}](t, w)
	assert.Equal(t, []string{"placed", "paid", "inProgress", "outForDelivery", "delivered"}, body.Statuses)
	assert.Equal(t, []string{"delivered"}, body.TerminalStates)
	require.Len(t, body.Transitions, 4)
	assert.Equal(t, "payment_provider", body.Transitions[0].Actor)
}
