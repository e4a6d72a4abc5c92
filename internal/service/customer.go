package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/foodordering/food-server-go/internal/database"
	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/metrics"
	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/repository"
	"github.com/foodordering/food-server-go/internal/util"
)

type SignupParams struct {
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
	Password      string
}

// CustomerService handles registration and profile changes.
type CustomerService struct {
	db        database.Transactor
	customers repository.CustomerRepository
	auth      *AuthService
	cipher    *util.PasswordCipher
}

func NewCustomerService(
	db database.Transactor,
	customers repository.CustomerRepository,
	auth *AuthService,
	cipher *util.PasswordCipher,
) *CustomerService {
	return &CustomerService{
		db:        db,
		customers: customers,
		auth:      auth,
		cipher:    cipher,
	}
}

// Signup validates the request in a fixed order (missing fields, name length, email,
// contact number, password strength, duplicates) and stores the customer.
func (s *CustomerService) Signup(ctx context.Context, params SignupParams) (*model.Customer, error) {
	customer, err := s.signup(ctx, params)
	if err != nil {
		metrics.RecordSignup(metrics.OutcomeFailure, string(apperrors.GetCode(err)))
		return nil, err
	}
	metrics.RecordSignup(metrics.OutcomeSuccess, "")
	return customer, nil
}

func (s *CustomerService) signup(ctx context.Context, params SignupParams) (*model.Customer, error) {
	if util.AnyEmpty(params.FirstName, params.Email, params.ContactNumber, params.Password) {
		return nil, apperrors.SignupFieldsMissing()
	}
	if !util.IsValidName(params.FirstName, params.LastName) {
		return nil, apperrors.NameTooLong()
	}
	if !util.IsValidEmail(params.Email) {
		return nil, apperrors.InvalidEmail()
	}
	if !util.IsValidContactNumber(params.ContactNumber) {
		return nil, apperrors.InvalidContact()
	}
	if !util.IsStrongPassword(params.Password) {
		return nil, apperrors.WeakPassword()
	}

	salt, hash := s.cipher.Encrypt(params.Password)

	var customer *model.Customer
	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		customers := s.customers.WithTx(tx)

		existing, err := customers.FindByContactNumber(ctx, params.ContactNumber)
		if err != nil {
			return apperrors.Database(err)
		}
		if existing != nil {
			return apperrors.DuplicateContact()
		}

		existing, err = customers.FindByEmail(ctx, params.Email)
		if err != nil {
			return apperrors.Database(err)
		}
		if existing != nil {
			return apperrors.DuplicateEmail()
		}

		customer, err = customers.Create(ctx, model.CreateCustomerParams{
			UUID:          uuid.NewString(),
			FirstName:     params.FirstName,
			LastName:      optional(params.LastName),
			Email:         params.Email,
			ContactNumber: params.ContactNumber,
			Password:      hash,
			Salt:          salt,
		})
		if err != nil {
			return translateCustomerWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("customerId", customer.UUID).Msg("customer registered")
	return customer, nil
}

// UpdateCustomer changes the names of the token's owner. An empty last name
// leaves the stored one untouched.
func (s *CustomerService) UpdateCustomer(ctx context.Context, accessToken, firstName, lastName string) (*model.Customer, error) {
	if firstName == "" {
		return nil, apperrors.FirstNameMissing()
	}
	if !util.IsValidName(firstName, lastName) {
		return nil, apperrors.UpdateNameTooLong()
	}

	authed, err := s.auth.Resolve(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.Update(ctx, authed.Customer.ID, model.UpdateCustomerParams{
		FirstName: firstName,
		LastName:  optional(lastName),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if customer == nil {
		return nil, apperrors.NotFound("Customer")
	}

	log.Info().Str("customerId", customer.UUID).Msg("customer details updated")
	return customer, nil
}

// UpdatePassword verifies oldPassword and stores newPassword under a fresh
// salt. Existing sessions stay valid.
func (s *CustomerService) UpdatePassword(ctx context.Context, accessToken, oldPassword, newPassword string) (*model.Customer, error) {
	if util.AnyEmpty(oldPassword, newPassword) {
		return nil, apperrors.PasswordFieldMissing()
	}

	authed, err := s.auth.Resolve(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !util.IsStrongPassword(newPassword) {
		return nil, apperrors.UpdateWeakPassword()
	}

	var customer *model.Customer
	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		customers := s.customers.WithTx(tx)

		locked, err := customers.LockByID(ctx, authed.Customer.ID)
		if err != nil {
			return apperrors.Database(err)
		}
		if locked == nil {
			return apperrors.NotFound("Customer")
		}

		if !s.cipher.Verify(oldPassword, locked.Salt, locked.Password) {
			return apperrors.IncorrectOldPassword()
		}

		salt, hash := s.cipher.Encrypt(newPassword)
		if err := customers.UpdatePassword(ctx, locked.ID, hash, salt); err != nil {
			return apperrors.Database(err)
		}
		locked.Password, locked.Salt = hash, salt
		customer = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("customerId", customer.UUID).Msg("customer password updated")
	return customer, nil
}

// translateCustomerWriteError maps a unique violation lost to a concurrent
// signup onto the same errors the pre-insert checks return.
func translateCustomerWriteError(err error) error {
	constraint, ok := repository.UniqueViolation(err)
	if !ok {
		return apperrors.Database(err)
	}
	if constraint == repository.CustomerEmailConstraint {
		return apperrors.DuplicateEmail()
	}
	return apperrors.DuplicateContact()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
