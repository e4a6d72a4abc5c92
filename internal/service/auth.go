package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/foodordering/food-server-go/internal/config"
	"github.com/foodordering/food-server-go/internal/database"
	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/metrics"
	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/repository"
	"github.com/foodordering/food-server-go/internal/util"
)

// AuthenticatedCustomer is a resolved, live session and its owner.
type AuthenticatedCustomer struct {
	Customer *model.Customer
	Session  *model.CustomerAuth
}

// LoginResult carries the raw access token, which is never stored.
type LoginResult struct {
	AuthenticatedCustomer
	AccessToken string
}

// AuthService issues, validates and terminates bearer-token sessions.
type AuthService struct {
	db        database.Transactor
	customers repository.CustomerRepository
	sessions  repository.SessionRepository
	cipher    *util.PasswordCipher
	issuer    *util.AccessTokenIssuer
	now       func() time.Time
}

func NewAuthService(
	db database.Transactor,
	customers repository.CustomerRepository,
	sessions repository.SessionRepository,
	cipher *util.PasswordCipher,
	issuer *util.AccessTokenIssuer,
) *AuthService {
	return &AuthService{
		db:        db,
		customers: customers,
		sessions:  sessions,
		cipher:    cipher,
		issuer:    issuer,
		now:       time.Now,
	}
}

// Login verifies the contact number and password and opens a new session
// expiring SessionDuration from now.
func (s *AuthService) Login(ctx context.Context, contactNumber, password string) (*LoginResult, error) {
	result, err := s.login(ctx, contactNumber, password)
	recordAuth("login", err)
	return result, err
}

func (s *AuthService) login(ctx context.Context, contactNumber, password string) (*LoginResult, error) {
	if util.AnyEmpty(contactNumber, password) {
		return nil, apperrors.BadCredentialFormat()
	}

	customer, err := s.customers.FindByContactNumber(ctx, contactNumber)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if customer == nil {
		return nil, apperrors.NotRegistered()
	}

	if !s.cipher.Verify(password, customer.Salt, customer.Password) {
		log.Warn().Str("customerId", customer.UUID).Msg("login rejected: password mismatch")
		return nil, apperrors.InvalidCredentials()
	}

	now := s.now()
	expiresAt := now.Add(config.SessionDuration)

	token, err := s.issuer.Issue(customer.Password, customer.UUID, now, expiresAt)
	if err != nil {
		return nil, apperrors.Internal("failed to issue access token").WithCause(err)
	}

	session, err := s.sessions.Create(ctx, model.CreateCustomerAuthParams{
		UUID:            uuid.NewString(),
		CustomerID:      customer.ID,
		AccessTokenHash: util.HashToken(token),
		LoginAt:         now,
		ExpiresAt:       expiresAt,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("customerId", customer.UUID).
		Str("sessionId", session.UUID).
		Time("expiresAt", expiresAt).
		Msg("customer logged in")

	return &LoginResult{
		AuthenticatedCustomer: AuthenticatedCustomer{Customer: customer, Session: session},
		AccessToken:           token,
	}, nil
}

// Resolve maps a bearer token to its live session. It never mutates state.
func (s *AuthService) Resolve(ctx context.Context, accessToken string) (*AuthenticatedCustomer, error) {
	result, err := s.resolve(ctx, accessToken)
	recordAuth("resolve", err)
	return result, err
}

func (s *AuthService) resolve(ctx context.Context, accessToken string) (*AuthenticatedCustomer, error) {
	if accessToken == "" {
		return nil, apperrors.NotLoggedIn()
	}

	session, err := s.sessions.FindByTokenHash(ctx, util.HashToken(accessToken))
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if session == nil {
		return nil, apperrors.NotLoggedIn()
	}

	if err := checkSession(session, s.now()); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, session.CustomerID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if customer == nil {
		return nil, apperrors.NotLoggedIn()
	}

	return &AuthenticatedCustomer{Customer: customer, Session: session}, nil
}

// Logout terminates the session. The row is locked for the duration of the
// check-and-set so concurrent logouts cannot both succeed.
func (s *AuthService) Logout(ctx context.Context, accessToken string) (*AuthenticatedCustomer, error) {
	result, err := s.logout(ctx, accessToken)
	recordAuth("logout", err)
	return result, err
}

func (s *AuthService) logout(ctx context.Context, accessToken string) (*AuthenticatedCustomer, error) {
	if accessToken == "" {
		return nil, apperrors.NotLoggedIn()
	}

	var result *AuthenticatedCustomer
	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		sessions := s.sessions.WithTx(tx)
		customers := s.customers.WithTx(tx)

		session, err := sessions.FindByTokenHashForUpdate(ctx, util.HashToken(accessToken))
		if err != nil {
			return apperrors.Database(err)
		}
		if session == nil {
			return apperrors.NotLoggedIn()
		}

		now := s.now()
		if err := checkSession(session, now); err != nil {
			return err
		}

		changed, err := sessions.MarkLoggedOut(ctx, session.ID, now)
		if err != nil {
			return apperrors.Database(err)
		}
		if !changed {
			return apperrors.AlreadyLoggedOut()
		}
		session.LogoutAt = &now

		customer, err := customers.FindByID(ctx, session.CustomerID)
		if err != nil {
			return apperrors.Database(err)
		}
		if customer == nil {
			return apperrors.NotLoggedIn()
		}

		result = &AuthenticatedCustomer{Customer: customer, Session: session}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("customerId", result.Customer.UUID).
		Str("sessionId", result.Session.UUID).
		Msg("customer logged out")

	return result, nil
}

// checkSession rejects logged-out sessions and sessions whose remaining
// lifetime is negative or longer than SessionDuration. Zero remaining is live.
func checkSession(session *model.CustomerAuth, now time.Time) error {
	if session.IsLoggedOut() {
		return apperrors.AlreadyLoggedOut()
	}
	remaining := session.ExpiresAt.Sub(now)
	if remaining < 0 || remaining > config.SessionDuration {
		return apperrors.SessionExpired()
	}
	return nil
}

func recordAuth(operation string, err error) {
	if err == nil {
		metrics.RecordAuth(operation, metrics.OutcomeSuccess, "")
		return
	}
	metrics.RecordAuth(operation, metrics.OutcomeFailure, string(apperrors.GetCode(err)))
}
