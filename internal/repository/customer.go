package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foodordering/food-server-go/internal/model"
)

// Unique constraint names generated by Postgres for the customer table.
const (
	CustomerEmailConstraint   = "customer_email_key"
	CustomerContactConstraint = "customer_contact_number_key"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Customer, error)
	FindByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	// LockByID selects the row FOR UPDATE; only meaningful inside a transaction.
	LockByID(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, params model.CreateCustomerParams) (*model.Customer, error)
	Update(ctx context.Context, id int64, params model.UpdateCustomerParams) (*model.Customer, error)
	UpdatePassword(ctx context.Context, id int64, password, salt string) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) CustomerRepository
}

type customerRepo struct {
	db sqlxDB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) WithTx(tx *sqlx.Tx) CustomerRepository {
	return &customerRepo{db: tx}
}

func (r *customerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		SELECT * FROM customer WHERE id = $1
	`, id)
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) FindByUUID(ctx context.Context, uuid string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		SELECT * FROM customer WHERE uuid = $1
	`, uuid)
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) FindByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		SELECT * FROM customer WHERE contact_number = $1
	`, contactNumber)
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		SELECT * FROM customer WHERE email = $1
	`, email)
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) LockByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		SELECT * FROM customer WHERE id = $1 FOR UPDATE
	`, id)
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) Create(ctx context.Context, params model.CreateCustomerParams) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		INSERT INTO customer (uuid, first_name, last_name, email, contact_number, password, salt)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	`, params.UUID, params.FirstName, params.LastName, params.Email, params.ContactNumber, params.Password, params.Salt)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update sets first_name and, when LastName is non-nil, last_name.
func (r *customerRepo) Update(ctx context.Context, id int64, params model.UpdateCustomerParams) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, `
		UPDATE customer SET
			first_name = $2,
			last_name = COALESCE($3, last_name),
			updated_at = $4
		WHERE id = $1
		RETURNING *
	`, id, params.FirstName, params.LastName, time.Now())
	return HandleNotFound(&customer, err)
}

func (r *customerRepo) UpdatePassword(ctx context.Context, id int64, password, salt string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customer SET
			password = $2,
			salt = $3,
			updated_at = $4
		WHERE id = $1
	`, id, password, salt, time.Now())
	return err
}
