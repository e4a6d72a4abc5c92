package util

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenIssuer mints HS256 bearer tokens. The signing key is supplied
// per call so each session is keyed by the customer's verified login hash.
type AccessTokenIssuer struct {
	issuer string
}

func NewAccessTokenIssuer(issuer string) *AccessTokenIssuer {
	return &AccessTokenIssuer{issuer: issuer}
}

func (i *AccessTokenIssuer) Issue(signingKey, customerUUID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   customerUUID,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
