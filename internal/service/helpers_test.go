package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/repository/repotest"
	"github.com/foodordering/food-server-go/internal/util"
)

const testPassword = "Secret@123"

type testEnv struct {
	store     *repotest.Store
	auth      *AuthService
	customers *CustomerService
	addresses *AddressService
	clock     *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repotest.NewStore()
	cipher := util.NewPasswordCipher(10)
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	auth := NewAuthService(store, store.Customers(), store.Sessions(), cipher, util.NewAccessTokenIssuer("test"))
	auth.now = clock.Now

	return &testEnv{
		store:     store,
		auth:      auth,
		customers: NewCustomerService(store, store.Customers(), auth, cipher),
		addresses: NewAddressService(store, store.Addresses()),
		clock:     clock,
	}
}

func (e *testEnv) signup(t *testing.T, contact, email string) *model.Customer {
	t.Helper()
	customer, err := e.customers.Signup(context.Background(), SignupParams{
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         email,
		ContactNumber: contact,
		Password:      testPassword,
	})
	require.NoError(t, err)
	return customer
}

func (e *testEnv) login(t *testing.T, contact string) *LoginResult {
	t.Helper()
	result, err := e.auth.Login(context.Background(), contact, testPassword)
	require.NoError(t, err)
	return result
}

func createParamsLike(contact, email string) model.CreateCustomerParams {
	return model.CreateCustomerParams{
		UUID:          "race",
		FirstName:     "Race",
		Email:         email,
		ContactNumber: contact,
		Password:      "hash",
		Salt:          "salt",
	}
}
