package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/store/gormstore"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "https://tenant.example.com/"
	testAudience = "food-ordering-api"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func validClaims(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    testIssuer,
		Audience:  jwt.ClaimStrings{testAudience},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func sign(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func echoIdentity(c *gin.Context) error {
	c.JSON(http.StatusOK, gin.H{"auth0Id": Auth0ID(c), "userID": UserID(c)})
	return nil
}

func serve(t *testing.T, handler gin.HandlerFunc, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/", handler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_ValidToken(t *testing.T) {
	log, _ := logrustest.NewNullLogger()
	// issuer without trailing slash is normalised
	verifier := NewHMACVerifier([]byte(testSecret), "https://tenant.example.com", testAudience)
	h := Pipeline(log, Authenticate(verifier), echoIdentity)

	w := serve(t, h, "Bearer "+sign(t, validClaims("auth0|abc"), testSecret))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "auth0|abc", body["auth0Id"])
}

func TestAuthenticate_Rejects(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	verifier := NewHMACVerifier([]byte(testSecret), testIssuer, testAudience)
	h := Pipeline(log, Authenticate(verifier), echoIdentity)

	expired := validClaims("auth0|abc")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongAudience := validClaims("auth0|abc")
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}

	wrongIssuer := validClaims("auth0|abc")
	wrongIssuer.Issuer = "https://evil.example.com/"

	noExpiry := validClaims("auth0|abc")
	noExpiry.ExpiresAt = nil

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims("auth0|abc")).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing_header", ""},
		{"not_bearer", "Basic dXNlcjpwYXNz"},
		{"garbage", "Bearer not-a-jwt"},
		{"wrong_secret", "Bearer " + sign(t, validClaims("auth0|abc"), "other-secret")},
		{"expired", "Bearer " + sign(t, expired, testSecret)},
		{"wrong_audience", "Bearer " + sign(t, wrongAudience, testSecret)},
		{"wrong_issuer", "Bearer " + sign(t, wrongIssuer, testSecret)},
		{"no_expiry", "Bearer " + sign(t, noExpiry, testSecret)},
		{"no_subject", "Bearer " + sign(t, validClaims(""), testSecret)},
		{"alg_none", "Bearer " + noneToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()
			w := serve(t, h, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, w.Body.String(), "401 carries no diagnostic body")
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, "unauthorized", hook.LastEntry().Data["kind"])
		})
	}
}

func TestResolveUser(t *testing.T) {
	s, err := gormstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.CreateUser(context.Background(), &models.User{ID: "user-1", Auth0ID: "auth0|known", Email: "k@example.com"}))

	log, _ := logrustest.NewNullLogger()
	verifier := NewHMACVerifier([]byte(testSecret), testIssuer, testAudience)
	h := Pipeline(log, Authenticate(verifier), ResolveUser(s), echoIdentity)

	w := serve(t, h, "Bearer "+sign(t, validClaims("auth0|known"), testSecret))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["userID"])

	w = serve(t, h, "Bearer "+sign(t, validClaims("auth0|stranger"), testSecret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestNewJWKSVerifier_RequiresIssuer(t *testing.T) {
	_, err := NewJWKSVerifier(context.Background(), " ", testAudience)
	assert.Error(t, err)
}
