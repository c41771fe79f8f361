package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=journal dbname=journal sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestNewStoreDefaultsTimeout(t *testing.T) {
	s := newStore(nil, 0)
	assert.Equal(t, DefaultQueryTimeout, s.timeout)

	s = newStore(nil, time.Second)
	assert.Equal(t, time.Second, s.timeout)
}

func TestSessionCarriesDeadline(t *testing.T) {
	s := newStore(dryRunDB(t), 2*time.Second)

	tx, cancel := s.session(context.Background())
	defer cancel()

	deadline, ok := tx.Statement.Context.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
}

func TestConstraintClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintCategoryNameKey})
	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: constraintPostsCategoryFK}

	assert.True(t, isUniqueViolation(unique, constraintCategoryNameKey))
	assert.True(t, isUniqueViolation(unique, ""))
	assert.False(t, isUniqueViolation(unique, constraintUsernameKey))
	assert.False(t, isUniqueViolation(fk, ""))

	assert.True(t, isForeignKeyViolation(fk, constraintPostsCategoryFK))
	assert.False(t, isForeignKeyViolation(fk, constraintCommentsPostFK))
	assert.False(t, isForeignKeyViolation(errors.New("boom"), ""))
}

func TestDataErr(t *testing.T) {
	assert.NoError(t, dataErr("op", nil))

	err := dataErr("list posts", context.DeadlineExceeded)
	assert.True(t, apperror.Is(err, apperror.KindDataAccess))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	notFound := apperror.NotFound("post not found")
	assert.Same(t, notFound, dataErr("get post", notFound))
}
