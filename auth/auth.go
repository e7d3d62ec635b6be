// Package auth issues and verifies the bearer tokens that identify the
// account behind a request. The account is carried in the subject claim.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/DE-labtory/coinflip"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "coinflip"

var ErrEmptySecret = errors.New("auth secret is empty")
var ErrEmptyAccount = errors.New("account is empty")
var ErrInvalidToken = errors.New("invalid token")

type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New returns an HS256 authenticator. A non-positive ttl issues tokens
// without expiry.
func New(secret string, ttl time.Duration) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Authenticator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (a *Authenticator) Issue(account coinflip.AccountID) (string, error) {
	if account == "" {
		return "", ErrEmptyAccount
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  string(account),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if a.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(a.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify checks signature, issuer and expiry and returns the account.
func (a *Authenticator) Verify(tokenString string) (coinflip.AccountID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return coinflip.AccountID(claims.Subject), nil
}
