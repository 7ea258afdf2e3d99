package auth

import (
	"errors"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload: the registered claims (sub, iat, exp) plus the
// role copied from the user at issuance.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// TokenCodec issues and verifies HS256-signed bearer tokens. The key is
// read-only after construction, so one codec can serve concurrent requests.
type TokenCodec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenCodec builds a codec signing with key; tokens expire ttl after
// issuance.
func NewTokenCodec(key []byte, ttl time.Duration) (*TokenCodec, error) {
	if len(key) == 0 {
		return nil, errors.New("token signing key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &TokenCodec{key: k, ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window of issued tokens.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token for subjectID with role.
func (c *TokenCodec) Issue(subjectID string, role Role) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: role,
	})

	return token.SignedString(c.key)
}

// Verify checks the signature and expiry of tokenString and returns the
// identity it carries. Every failure is reported as common.ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	// The parser checks the signature before validating any claim.
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return Identity{}, common.ErrInvalidToken
	}
	if claims.Role != RoleAdmin && claims.Role != RoleUser {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{SubjectID: claims.Subject, Role: claims.Role}, nil
}
