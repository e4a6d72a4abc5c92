// Package repotest provides an in-memory implementation of the repository
// interfaces for tests of the layers above storage.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/foodordering/food-server-go/internal/database"
	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/repository"
)

// Store holds every table in memory. Transactions run fn directly and do
// not roll back.
type Store struct {
	mu        sync.Mutex
	nextID    int64
	err       error
	customers map[int64]model.Customer
	sessions  map[int64]model.CustomerAuth
	addresses map[int64]model.Address
	owners    map[int64]int64
	states    map[int64]model.State
}

func NewStore() *Store {
	return &Store{
		customers: make(map[int64]model.Customer),
		sessions:  make(map[int64]model.CustomerAuth),
		addresses: make(map[int64]model.Address),
		owners:    make(map[int64]int64),
		states:    make(map[int64]model.State),
	}
}

var _ database.Transactor = (*Store)(nil)

func (s *Store) WithTx(ctx context.Context, fn database.TxFunc) error {
	return fn(nil)
}

// FailWith makes every subsequent repository call return err. Pass nil to reset.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s} }
func (s *Store) Sessions() repository.SessionRepository   { return &sessionRepo{s} }
func (s *Store) Addresses() repository.AddressRepository  { return &addressRepo{s} }

func (s *Store) AddState(name string) model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	state := model.State{ID: s.nextID, UUID: uuid.NewString(), StateName: name}
	s.states[state.ID] = state
	return state
}

// Session returns the stored session with the given token hash.
func (s *Store) Session(tokenHash string) (model.CustomerAuth, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.sessions {
		if a.AccessTokenHash == tokenHash {
			return a, true
		}
	}
	return model.CustomerAuth{}, false
}

// UpdateSession overwrites a stored session, e.g. to move its expiry.
func (s *Store) UpdateSession(auth model.CustomerAuth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[auth.ID] = auth
}

// Customer returns the stored customer with the given id.
func (s *Store) Customer(id int64) (model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	return c, ok
}

// ArchiveAddress sets the address inactive, as an order would.
func (s *Store) ArchiveAddress(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.addresses[id]
	a.Active = model.AddressArchived
	s.addresses[id] = a
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: pq.ErrorCode(pgerrcode.UniqueViolation), Constraint: constraint}
}

type customerRepo struct{ s *Store }

func (r *customerRepo) WithTx(*sqlx.Tx) repository.CustomerRepository { return r }

func (r *customerRepo) find(match func(model.Customer) bool) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, c := range r.s.customers {
		if match(c) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.find(func(c model.Customer) bool { return c.ID == id })
}

func (r *customerRepo) FindByUUID(ctx context.Context, id string) (*model.Customer, error) {
	return r.find(func(c model.Customer) bool { return c.UUID == id })
}

func (r *customerRepo) FindByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error) {
	return r.find(func(c model.Customer) bool { return c.ContactNumber == contactNumber })
}

func (r *customerRepo) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.find(func(c model.Customer) bool { return c.Email == email })
}

func (r *customerRepo) LockByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.FindByID(ctx, id)
}

func (r *customerRepo) Create(ctx context.Context, params model.CreateCustomerParams) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, c := range r.s.customers {
		if c.ContactNumber == params.ContactNumber {
			return nil, uniqueViolation(repository.CustomerContactConstraint)
		}
		if c.Email == params.Email {
			return nil, uniqueViolation(repository.CustomerEmailConstraint)
		}
	}
	r.s.nextID++
	now := time.Now()
	c := model.Customer{
		ID:            r.s.nextID,
		UUID:          params.UUID,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		Email:         params.Email,
		ContactNumber: params.ContactNumber,
		Password:      params.Password,
		Salt:          params.Salt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.s.customers[c.ID] = c
	return &c, nil
}

func (r *customerRepo) Update(ctx context.Context, id int64, params model.UpdateCustomerParams) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	c.FirstName = params.FirstName
	if params.LastName != nil {
		c.LastName = params.LastName
	}
	c.UpdatedAt = time.Now()
	r.s.customers[id] = c
	return &c, nil
}

func (r *customerRepo) UpdatePassword(ctx context.Context, id int64, password, salt string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	c := r.s.customers[id]
	c.Password, c.Salt = password, salt
	r.s.customers[id] = c
	return nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) WithTx(*sqlx.Tx) repository.SessionRepository { return r }

func (r *sessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.CustomerAuth, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, a := range r.s.sessions {
		if a.AccessTokenHash == tokenHash {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *sessionRepo) FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*model.CustomerAuth, error) {
	return r.FindByTokenHash(ctx, tokenHash)
}

func (r *sessionRepo) Create(ctx context.Context, params model.CreateCustomerAuthParams) (*model.CustomerAuth, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, a := range r.s.sessions {
		if a.AccessTokenHash == params.AccessTokenHash {
			return nil, uniqueViolation("customer_auth_access_token_hash_key")
		}
	}
	r.s.nextID++
	a := model.CustomerAuth{
		ID:              r.s.nextID,
		UUID:            params.UUID,
		CustomerID:      params.CustomerID,
		AccessTokenHash: params.AccessTokenHash,
		LoginAt:         params.LoginAt,
		ExpiresAt:       params.ExpiresAt,
	}
	r.s.sessions[a.ID] = a
	return &a, nil
}

func (r *sessionRepo) MarkLoggedOut(ctx context.Context, id int64, logoutAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	a, ok := r.s.sessions[id]
	if !ok || a.LogoutAt != nil {
		return false, nil
	}
	a.LogoutAt = &logoutAt
	r.s.sessions[id] = a
	return true, nil
}

type addressRepo struct{ s *Store }

func (r *addressRepo) WithTx(*sqlx.Tx) repository.AddressRepository { return r }

func (r *addressRepo) FindAllStates(ctx context.Context) ([]model.State, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	states := make([]model.State, 0, len(r.s.states))
	for _, st := range r.s.states {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].StateName < states[j].StateName })
	return states, nil
}

func (r *addressRepo) FindStateByUUID(ctx context.Context, id string) (*model.State, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, st := range r.s.states {
		if st.UUID == id {
			return &st, nil
		}
	}
	return nil, nil
}

func (r *addressRepo) FindByUUID(ctx context.Context, id string) (*model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, a := range r.s.addresses {
		if a.UUID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *addressRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]model.AddressWithState, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	var out []model.AddressWithState
	for addressID, owner := range r.s.owners {
		if owner != customerID {
			continue
		}
		a, ok := r.s.addresses[addressID]
		if !ok {
			continue
		}
		st := r.s.states[a.StateID]
		out = append(out, model.AddressWithState{Address: a, StateUUID: st.UUID, StateName: st.StateName})
	}
	// IDs are allocated in insertion order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *addressRepo) FindOwnerID(ctx context.Context, addressID int64) (*int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	owner, ok := r.s.owners[addressID]
	if !ok {
		return nil, nil
	}
	return &owner, nil
}

func (r *addressRepo) Create(ctx context.Context, params model.CreateAddressParams) (*model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	r.s.nextID++
	a := model.Address{
		ID:             r.s.nextID,
		UUID:           params.UUID,
		FlatBuilNumber: params.FlatBuilNumber,
		Locality:       params.Locality,
		City:           params.City,
		Pincode:        params.Pincode,
		StateID:        params.StateID,
		Active:         model.AddressActive,
		CreatedAt:      time.Now(),
	}
	r.s.addresses[a.ID] = a
	return &a, nil
}

func (r *addressRepo) LinkCustomer(ctx context.Context, customerID, addressID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	r.s.owners[addressID] = customerID
	return nil
}

func (r *addressRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	delete(r.s.addresses, id)
	delete(r.s.owners, id)
	return nil
}
