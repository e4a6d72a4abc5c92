package model

import (
	"time"
)

// CustomerAuth is one login session. LogoutAt is terminal once set.
type CustomerAuth struct {
	ID              int64      `db:"id" json:"-"`
	UUID            string     `db:"uuid" json:"id"`
	CustomerID      int64      `db:"customer_id" json:"-"`
	AccessTokenHash string     `db:"access_token_hash" json:"-"`
	LoginAt         time.Time  `db:"login_at" json:"loginAt"`
	ExpiresAt       time.Time  `db:"expires_at" json:"expiresAt"`
	LogoutAt        *time.Time `db:"logout_at" json:"logoutAt,omitempty"`
}

func (a *CustomerAuth) IsLoggedOut() bool {
	return a.LogoutAt != nil
}

type CreateCustomerAuthParams struct {
	UUID            string
	CustomerID      int64
	AccessTokenHash string
	LoginAt         time.Time
	ExpiresAt       time.Time
}
