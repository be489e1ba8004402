package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"socialfeed/internal/models"
)

const (
	localUserID   = "user_id"
	localIdentity = "identity"
)

// IdentityClaims is the token issued by the identity provider. The subject is
// the user id.
type IdentityClaims struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	jwt.RegisteredClaims
}

// JWTIdentity parses an optional bearer token. Requests without one pass
// through anonymously; a token that does not verify is rejected.
func JWTIdentity(secret, issuer string) fiber.Handler {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims IdentityClaims

		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, opts...)
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if claims.Subject == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing subject")
		}

		c.Locals(localUserID, claims.Subject)
		c.Locals(localIdentity, &models.Identity{
			ID:        claims.Subject,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
			ImageURL:  claims.ImageURL,
		})
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := UIDFromLocals(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// UIDFromLocals returns the caller id set by JWTIdentity.
func UIDFromLocals(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals(localUserID).(string)
	if uid == "" {
		return "", fiber.ErrUnauthorized
	}
	return uid, nil
}

// IdentityFromLocals returns the caller set by JWTIdentity.
func IdentityFromLocals(c *fiber.Ctx) (*models.Identity, error) {
	id, _ := c.Locals(localIdentity).(*models.Identity)
	if id == nil || id.ID == "" {
		return nil, fiber.ErrUnauthorized
	}
	return id, nil
}

// IssueToken signs an identity token the way the identity provider does. It
// backs local tooling and tests; production tokens come from the provider.
func IssueToken(secret, issuer string, id models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		FirstName: id.FirstName,
		LastName:  id.LastName,
		ImageURL:  id.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
