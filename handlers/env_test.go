package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-ordering-api/events"
	"food-ordering-api/handlers"
	"food-ordering-api/imagestore"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/payment"
	"food-ordering-api/routes"
	"food-ordering-api/services"
	"food-ordering-api/store/gormstore"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	tokenSecret   = "handler-test-secret"
	tokenIssuer   = "https://auth.example.test/"
	tokenAudience = "food-ordering-api"
	webhookSecret = "whsec_handler_test"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func init() {
	gin.SetMode(gin.TestMode)
}

// checkoutStub opens sessions locally but verifies webhooks with the real
// Stripe signature check.
type checkoutStub struct {
	*payment.StripeGateway
	requests []payment.SessionRequest
}

func (g *checkoutStub) CreateCheckoutSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	g.requests = append(g.requests, req)
	return &payment.Session{ID: "cs_" + req.OrderID, URL: "https://checkout.example.test/" + req.OrderID}, nil
}

type uploadStub struct {
	uploads []*imagestore.Image
}

func (u *uploadStub) Upload(_ context.Context, img *imagestore.Image) (string, error) {
	u.uploads = append(u.uploads, img)
	return fmt.Sprintf("https://img.example.test/%d.png", len(u.uploads)), nil
}

type testEnv struct {
	t        *testing.T
	router   *gin.Engine
	store    *gormstore.Store
	payments *checkoutStub
	images   *uploadStub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, err := gormstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	log, _ := logrustest.NewNullLogger()
	payments := &checkoutStub{StripeGateway: payment.NewStripeGateway("sk_test_x", webhookSecret, "php")}
	images := &uploadStub{}

	h := handlers.New(
		services.NewUserService(s),
		services.NewRestaurantService(s, images, log),
		services.NewSearchService(s),
		services.NewOrderService(s, s, s, payments, events.NopPublisher{}, "http://front.example.test", log),
	)
	r := gin.New()
	routes.SetupRoutes(r, h, middleware.NewHMACVerifier([]byte(tokenSecret), tokenIssuer, tokenAudience), s, log)

	return &testEnv{t: t, router: r, store: s, payments: payments, images: images}
}

func (e *testEnv) token(subject string) string {
	e.t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(tokenSecret))
	require.NoError(e.t, err)
	return token
}

// do sends a request as subject; an empty subject sends no token.
func (e *testEnv) do(method, path, subject string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if subject != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(subject))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(method, path, subject string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(raw)
	}
	return e.do(method, path, subject, r, "application/json")
}

func (e *testEnv) provision(subject, email string) models.User {
	e.t.Helper()
	w := e.doJSON(http.MethodPost, "/api/my/user", subject, map[string]string{"email": email})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.User](e.t, w)
}

func (e *testEnv) createRestaurant(subject string, fields [][2]string) models.Restaurant {
	e.t.Helper()
	body, contentType := multipartBody(e.t, fields, pngHeader)
	w := e.do(http.MethodPost, "/api/my/restaurant", subject, body, contentType)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Restaurant](e.t, w)
}

func (e *testEnv) sendWebhook(payload string) *httptest.ResponseRecorder {
	e.t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    webhookSecret,
		Timestamp: time.Now(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/order/checkout/webhook", bytes.NewReader(signed.Payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signed.Header)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func multipartBody(t *testing.T, fields [][2]string, image []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f[0], f[1]))
	}
	if image != nil {
		part, err := mw.CreateFormFile("imageFile", "logo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func luigisForm() [][2]string {
	return [][2]string{
		{"restaurantName", "Luigi's"},
		{"city", "London"},
		{"country", "UK"},
		{"deliveryPrice", "4.99"},
		{"estimatedDeliveryTime", "30"},
		{"cuisines[0]", "Italian"},
		{"cuisines[1]", "Pizza"},
		{"menuItems[0][name]", "Margherita"},
		{"menuItems[0][price]", "12.50"},
		{"menuItems[1][name]", "Cola"},
		{"menuItems[1][price]", "3"},
	}
}
