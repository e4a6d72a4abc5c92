package model

import (
	"time"
)

// Address.Active is 1 while the address can be deleted and 0 once archived.
const (
	AddressArchived = 0
	AddressActive   = 1
)

type State struct {
	ID        int64  `db:"id" json:"-"`
	UUID      string `db:"uuid" json:"id"`
	StateName string `db:"state_name" json:"state_name"`
}

type Address struct {
	ID             int64     `db:"id" json:"-"`
	UUID           string    `db:"uuid" json:"id"`
	FlatBuilNumber string    `db:"flat_buil_number" json:"flat_building_name"`
	Locality       string    `db:"locality" json:"locality"`
	City           string    `db:"city" json:"city"`
	Pincode        string    `db:"pincode" json:"pincode"`
	StateID        int64     `db:"state_id" json:"-"`
	Active         int       `db:"active" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
}

// AddressWithState is an address joined with its state for listing.
type AddressWithState struct {
	Address
	StateUUID string `db:"state_uuid"`
	StateName string `db:"state_name"`
}

type CreateAddressParams struct {
	UUID           string
	FlatBuilNumber string
	Locality       string
	City           string
	Pincode        string
	StateID        int64
}
