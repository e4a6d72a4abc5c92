package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foodordering/food-server-go/internal/model"
)

// SessionRepository stores customer_auth rows. Rows are never deleted.
type SessionRepository interface {
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.CustomerAuth, error)
	// FindByTokenHashForUpdate locks the row; only meaningful inside a transaction.
	FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*model.CustomerAuth, error)
	Create(ctx context.Context, params model.CreateCustomerAuthParams) (*model.CustomerAuth, error)
	// MarkLoggedOut sets logout_at only if it is still NULL and reports whether
	// a row changed.
	MarkLoggedOut(ctx context.Context, id int64, logoutAt time.Time) (bool, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) SessionRepository
}

type sessionRepo struct {
	db sqlxDB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) WithTx(tx *sqlx.Tx) SessionRepository {
	return &sessionRepo{db: tx}
}

func (r *sessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.CustomerAuth, error) {
	var auth model.CustomerAuth
	err := r.db.GetContext(ctx, &auth, `
		SELECT * FROM customer_auth WHERE access_token_hash = $1
	`, tokenHash)
	return HandleNotFound(&auth, err)
}

func (r *sessionRepo) FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*model.CustomerAuth, error) {
	var auth model.CustomerAuth
	err := r.db.GetContext(ctx, &auth, `
		SELECT * FROM customer_auth WHERE access_token_hash = $1 FOR UPDATE
	`, tokenHash)
	return HandleNotFound(&auth, err)
}

func (r *sessionRepo) Create(ctx context.Context, params model.CreateCustomerAuthParams) (*model.CustomerAuth, error) {
	var auth model.CustomerAuth
	err := r.db.GetContext(ctx, &auth, `
		INSERT INTO customer_auth (uuid, customer_id, access_token_hash, login_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.UUID, params.CustomerID, params.AccessTokenHash, params.LoginAt, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *sessionRepo) MarkLoggedOut(ctx context.Context, id int64, logoutAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE customer_auth SET logout_at = $2
		WHERE id = $1 AND logout_at IS NULL
	`, id, logoutAt)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
