package utils // package utils provides helpers for minting and checking inter-service tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token roles.  A caller token speaks for the user named in sub; a
// service token is used by peers for the unguarded internal lookups.
const (
	RoleCaller  = "caller"
	RoleService = "service"
)

// DefaultTokenTTL bounds the lifetime of tokens minted for outbound calls.
const DefaultTokenTTL = 5 * time.Minute

// Claims is the parsed content of a token.
type Claims struct {
	Subject string
	Role    string
}

// NewToken builds and signs an HS256 JWT.  The claims are subject (sub),
// role, expiration (exp) and issued at (iat).
func NewToken(secret, subject, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt: empty secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates raw against secret and returns its claims.  Only
// HMAC signatures are accepted.
func ParseToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !tok.Valid {
		return Claims{}, errors.New("jwt: invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("jwt: invalid claims")
	}
	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	if sub == "" {
		return Claims{}, errors.New("jwt: missing subject")
	}
	return Claims{Subject: sub, Role: role}, nil
}
