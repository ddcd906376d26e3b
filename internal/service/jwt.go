package service

import (
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/aegis-safety/backend/internal/errors"
	"github.com/aegis-safety/backend/pkg/clock"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	AccountID uint
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies long-lived session tokens. Issue
// stamps iat so middleware can invalidate sessions created before a
// password change.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenIssuer(secret string, ttl time.Duration, clk clock.Clock) *TokenIssuer {
	if clk == nil {
		clk = clock.NewReal()
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

// Issue creates a signed HS256 session token for accountID.
func (s *TokenIssuer) Issue(accountID uint) (string, error) {
	now := s.clock.Now()

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(accountID), 10),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token. Expired, malformed, and
// wrongly signed tokens all map to ErrInvalidToken.
func (s *TokenIssuer) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))

	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, apperrors.ErrInvalidToken
	}
	accountID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil {
		return nil, apperrors.ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, apperrors.ErrInvalidToken
	}

	return &SessionClaims{
		AccountID: uint(accountID),
		IssuedAt:  iat.Time,
		ExpiresAt: exp.Time,
	}, nil
}

// TTL returns the configured session lifetime.
func (s *TokenIssuer) TTL() time.Duration {
	return s.ttl
}
