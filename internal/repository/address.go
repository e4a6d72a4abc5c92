package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/foodordering/food-server-go/internal/model"
)

type AddressRepository interface {
	FindAllStates(ctx context.Context) ([]model.State, error)
	FindStateByUUID(ctx context.Context, uuid string) (*model.State, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Address, error)
	// FindByCustomerID returns the customer's addresses, newest first.
	FindByCustomerID(ctx context.Context, customerID int64) ([]model.AddressWithState, error)
	// FindOwnerID returns the customer linked to the address, or nil if unlinked.
	FindOwnerID(ctx context.Context, addressID int64) (*int64, error)
	Create(ctx context.Context, params model.CreateAddressParams) (*model.Address, error)
	LinkCustomer(ctx context.Context, customerID, addressID int64) error
	Delete(ctx context.Context, id int64) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) AddressRepository
}

type addressRepo struct {
	db sqlxDB
}

func NewAddressRepository(db *sqlx.DB) AddressRepository {
	return &addressRepo{db: db}
}

func (r *addressRepo) WithTx(tx *sqlx.Tx) AddressRepository {
	return &addressRepo{db: tx}
}

func (r *addressRepo) FindAllStates(ctx context.Context) ([]model.State, error) {
	var states []model.State
	err := r.db.SelectContext(ctx, &states, `
		SELECT * FROM state ORDER BY state_name
	`)
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *addressRepo) FindStateByUUID(ctx context.Context, uuid string) (*model.State, error) {
	var state model.State
	err := r.db.GetContext(ctx, &state, `
		SELECT * FROM state WHERE uuid = $1
	`, uuid)
	return HandleNotFound(&state, err)
}

func (r *addressRepo) FindByUUID(ctx context.Context, uuid string) (*model.Address, error) {
	var address model.Address
	err := r.db.GetContext(ctx, &address, `
		SELECT * FROM address WHERE uuid = $1
	`, uuid)
	return HandleNotFound(&address, err)
}

func (r *addressRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]model.AddressWithState, error) {
	var addresses []model.AddressWithState
	err := r.db.SelectContext(ctx, &addresses, `
		SELECT a.*, s.uuid AS state_uuid, s.state_name
		FROM address a
		JOIN customer_address ca ON ca.address_id = a.id
		JOIN state s ON s.id = a.state_id
		WHERE ca.customer_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepo) FindOwnerID(ctx context.Context, addressID int64) (*int64, error) {
	var customerID int64
	err := r.db.GetContext(ctx, &customerID, `
		SELECT customer_id FROM customer_address WHERE address_id = $1
	`, addressID)
	return HandleNotFound(&customerID, err)
}

func (r *addressRepo) Create(ctx context.Context, params model.CreateAddressParams) (*model.Address, error) {
	var address model.Address
	err := r.db.GetContext(ctx, &address, `
		INSERT INTO address (uuid, flat_buil_number, locality, city, pincode, state_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	`, params.UUID, params.FlatBuilNumber, params.Locality, params.City, params.Pincode, params.StateID, model.AddressActive)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepo) LinkCustomer(ctx context.Context, customerID, addressID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customer_address (customer_id, address_id) VALUES ($1, $2)
	`, customerID, addressID)
	return err
}

func (r *addressRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM address WHERE id = $1
	`, id)
	return err
}
