package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/findoc-server/internal/model"
)

const typeAccess = "access"

// Claims represents access token claims.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	issuer    string
	audience  string
	ttl       time.Duration
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager.
func NewJWT(secretKey, issuer, audience string, ttl time.Duration) *JWT {
	return &JWT{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		ttl:       ttl,
	}
}

// Issue signs an access token for subject valid from now until now+ttl.
func (j *JWT) Issue(subject uuid.UUID, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Validate checks signature, issuer, audience, expiry against now and token
// type, and returns the subject. All failures wrap model.ErrInvalidToken.
func (j *JWT) Validate(tokenString string, now time.Time) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return uuid.Nil, invalid(err)
	}
	if !token.Valid {
		return uuid.Nil, invalid(errors.New("token is not valid"))
	}
	if claims.TokenType != typeAccess {
		return uuid.Nil, invalid(fmt.Errorf("token type mismatch: %q", claims.TokenType))
	}
	if claims.Subject == "" {
		return uuid.Nil, invalid(errors.New("missing subject"))
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, invalid(fmt.Errorf("malformed subject: %w", err))
	}
	if subject == uuid.Nil {
		return uuid.Nil, invalid(errors.New("nil subject"))
	}

	return subject, nil
}

func invalid(reason error) error {
	return fmt.Errorf("%w: %w", model.ErrInvalidToken, reason)
}
