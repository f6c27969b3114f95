package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-ordering-api/apperr"
	"food-ordering-api/store"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxAuth0ID = "auth0Id"
	ctxUserID  = "userID"
)

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type JWTVerifier struct {
	parser  *jwt.Parser
	keyfunc jwt.Keyfunc
}

var _ TokenVerifier = (*JWTVerifier)(nil)

// NewJWKSVerifier verifies RS256 tokens against the identity provider's
// published key set, refreshed in the background until ctx is done.
func NewJWKSVerifier(ctx context.Context, issuerBaseURL, audience string) (*JWTVerifier, error) {
	issuer := normalizeIssuer(issuerBaseURL)
	if issuer == "" {
		return nil, errors.New("auth: issuer base URL is required")
	}
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{issuer + ".well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("auth: failed to load JWKS: %w", err)
	}
	return newJWTVerifier(jwks.Keyfunc, issuer, audience, jwt.SigningMethodRS256.Alg()), nil
}

// NewHMACVerifier verifies HS256 tokens signed with a shared secret. Meant
// for local development and tests.
func NewHMACVerifier(secret []byte, issuerBaseURL, audience string) *JWTVerifier {
	kf := func(*jwt.Token) (interface{}, error) { return secret, nil }
	return newJWTVerifier(kf, normalizeIssuer(issuerBaseURL), audience, jwt.SigningMethodHS256.Alg())
}

func newJWTVerifier(kf jwt.Keyfunc, issuer, audience, alg string) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{alg}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &JWTVerifier{parser: jwt.NewParser(opts...), keyfunc: kf}
}

func (v *JWTVerifier) Verify(_ context.Context, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := v.parser.ParseWithClaims(raw, claims, v.keyfunc)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("auth: invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("auth: token has no subject")
	}
	return claims.Subject, nil
}

// Identity providers issue iss with a trailing slash.
func normalizeIssuer(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/"
}

// Authenticate requires a valid bearer token and stores its subject.
func Authenticate(verifier TokenVerifier) Stage {
	return func(c *gin.Context) error {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return apperr.Unauthorized(errors.New("missing bearer token"))
		}
		subject, err := verifier.Verify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return apperr.Unauthorized(err)
		}
		c.Set(ctxAuth0ID, subject)
		return nil
	}
}

// ResolveUser maps the token subject to a local user id. Runs after
// Authenticate.
func ResolveUser(users store.UserStore) Stage {
	return func(c *gin.Context) error {
		auth0ID := Auth0ID(c)
		if auth0ID == "" {
			return apperr.Unauthorized(errors.New("no authenticated subject"))
		}
		user, err := users.FindUserByAuth0ID(c.Request.Context(), auth0ID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.Unauthorized(fmt.Errorf("no user for subject %s", auth0ID))
		}
		if err != nil {
			return apperr.Internal("", err)
		}
		c.Set(ctxUserID, user.ID)
		return nil
	}
}

// Auth0ID is the verified token subject.
func Auth0ID(c *gin.Context) string {
	return c.GetString(ctxAuth0ID)
}

// UserID is the local id of the authenticated user.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
