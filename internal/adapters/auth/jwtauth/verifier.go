package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-records-access/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// walletClaims: sub = wallet address, role = patient|provider (informativo).
type walletClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier con tokens HS256.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func NewVerifier(secret, issuer string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims walletClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	wallet := strings.TrimSpace(claims.Subject)
	if wallet == "" {
		return auth.Claims{}, fmt.Errorf("%w: subject missing", ErrInvalidToken)
	}

	return auth.Claims{
		Wallet: wallet,
		Role:   strings.TrimSpace(claims.Role),
	}, nil
}

// Issue firma un token para wallet. Lo usan tests y tooling de dev; en prod el
// token lo emite el servicio de login.
func (v *Verifier) Issue(wallet, role string, ttl time.Duration) (string, error) {
	if v == nil || len(v.secret) == 0 {
		return "", ErrNotConfigured
	}
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return "", errors.New("wallet is required")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be greater than zero")
	}

	now := v.now().UTC()
	claims := walletClaims{
		Role: strings.TrimSpace(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   wallet,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
