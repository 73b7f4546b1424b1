package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider mints credentials for outbound peer calls.
type TokenProvider interface {
	Token() (string, error)
}

// ServiceTokenIssuer mints short-lived HS256 tokens that peers accept as
// coming from a trusted service rather than an end user.
type ServiceTokenIssuer struct {
	secret   []byte
	name     string
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewServiceTokenIssuer(secret, name, issuer, audience string, ttl time.Duration) *ServiceTokenIssuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ServiceTokenIssuer{
		secret:   []byte(secret),
		name:     name,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (i *ServiceTokenIssuer) Token() (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("service token secret is not configured")
	}

	now := i.now()
	claims := Claims{
		Role:    "Service",
		Service: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   i.name,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}
