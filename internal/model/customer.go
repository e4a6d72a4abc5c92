package model

import (
	"time"
)

type Customer struct {
	ID            int64     `db:"id" json:"-"`
	UUID          string    `db:"uuid" json:"id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      *string   `db:"last_name" json:"last_name,omitempty"`
	Email         string    `db:"email" json:"email_address"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	Password      string    `db:"password" json:"-"`
	Salt          string    `db:"salt" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
	UpdatedAt     time.Time `db:"updated_at" json:"-"`
}

type CreateCustomerParams struct {
	UUID          string
	FirstName     string
	LastName      *string
	Email         string
	ContactNumber string
	Password      string
	Salt          string
}

type UpdateCustomerParams struct {
	FirstName string
	LastName  *string
}
