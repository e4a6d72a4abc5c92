package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/foodordering/food-server-go/internal/database"
	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/repository"
	"github.com/foodordering/food-server-go/internal/util"
)

type SaveAddressParams struct {
	FlatBuildingName string
	Locality         string
	City             string
	Pincode          string
	StateUUID        string
}

// AddressService manages a customer's address book.
type AddressService struct {
	db        database.Transactor
	addresses repository.AddressRepository
}

func NewAddressService(db database.Transactor, addresses repository.AddressRepository) *AddressService {
	return &AddressService{db: db, addresses: addresses}
}

func (s *AddressService) SaveAddress(ctx context.Context, customer *model.Customer, params SaveAddressParams) (*model.Address, error) {
	if params.StateUUID == "" {
		return nil, apperrors.AddressFieldMissing()
	}

	state, err := s.addresses.FindStateByUUID(ctx, params.StateUUID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if state == nil {
		return nil, apperrors.StateNotFound()
	}

	if util.AnyEmpty(params.FlatBuildingName, params.Locality, params.City, params.Pincode) {
		return nil, apperrors.AddressFieldMissing()
	}
	if !util.IsValidAddressField(params.FlatBuildingName, params.Locality, params.City) {
		return nil, apperrors.AddressFieldTooLong()
	}
	if !util.IsValidPincode(params.Pincode) {
		return nil, apperrors.InvalidPincode()
	}

	var address *model.Address
	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		addresses := s.addresses.WithTx(tx)

		var err error
		address, err = addresses.Create(ctx, model.CreateAddressParams{
			UUID:           uuid.NewString(),
			FlatBuilNumber: params.FlatBuildingName,
			Locality:       params.Locality,
			City:           params.City,
			Pincode:        params.Pincode,
			StateID:        state.ID,
		})
		if err != nil {
			return apperrors.Database(err)
		}
		if err := addresses.LinkCustomer(ctx, customer.ID, address.ID); err != nil {
			return apperrors.Database(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("customerId", customer.UUID).
		Str("addressId", address.UUID).
		Msg("address saved")
	return address, nil
}

// ListAddresses returns the customer's addresses, newest first.
func (s *AddressService) ListAddresses(ctx context.Context, customer *model.Customer) ([]model.AddressWithState, error) {
	addresses, err := s.addresses.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return addresses, nil
}

// DeleteAddress removes an active address owned by customer. Archived
// addresses are returned unchanged.
func (s *AddressService) DeleteAddress(ctx context.Context, customer *model.Customer, addressUUID string) (*model.Address, error) {
	if addressUUID == "" {
		return nil, apperrors.AddressIDMissing()
	}

	address, err := s.addresses.FindByUUID(ctx, addressUUID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if address == nil {
		return nil, apperrors.AddressNotFound()
	}

	ownerID, err := s.addresses.FindOwnerID(ctx, address.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if ownerID == nil || *ownerID != customer.ID {
		return nil, apperrors.AddressNotOwned()
	}

	if address.Active != model.AddressActive {
		return address, nil
	}

	if err := s.addresses.Delete(ctx, address.ID); err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("customerId", customer.UUID).
		Str("addressId", address.UUID).
		Msg("address deleted")
	return address, nil
}

func (s *AddressService) ListStates(ctx context.Context) ([]model.State, error) {
	states, err := s.addresses.FindAllStates(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return states, nil
}
