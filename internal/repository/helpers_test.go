package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestHandleNotFound(t *testing.T) {
	t.Run("maps ErrNoRows to nil", func(t *testing.T) {
		v := 1
		got, err := HandleNotFound(&v, sql.ErrNoRows)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("passes other errors through", func(t *testing.T) {
		v := 1
		boom := errors.New("boom")
		got, err := HandleNotFound(&v, boom)
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})

	t.Run("returns the result on success", func(t *testing.T) {
		v := 1
		got, err := HandleNotFound(&v, nil)
		assert.NoError(t, err)
		assert.Equal(t, &v, got)
	})
}

func TestUniqueViolation(t *testing.T) {
	t.Run("detects wrapped unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{
			Code:       pq.ErrorCode(pgerrcode.UniqueViolation),
			Constraint: CustomerEmailConstraint,
		})
		constraint, ok := UniqueViolation(err)
		assert.True(t, ok)
		assert.Equal(t, CustomerEmailConstraint, constraint)
	})

	t.Run("ignores other postgres errors", func(t *testing.T) {
		_, ok := UniqueViolation(&pq.Error{Code: pq.ErrorCode(pgerrcode.ForeignKeyViolation)})
		assert.False(t, ok)
	})

	t.Run("ignores non-postgres errors", func(t *testing.T) {
		_, ok := UniqueViolation(errors.New("boom"))
		assert.False(t, ok)
	})
}
