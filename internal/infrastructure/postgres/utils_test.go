package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("23505 en texto no cuenta")))
	assert.True(t, isLockTimeout(&pgconn.PgError{Code: "55P03"}))
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%arroz%`, likePattern("arroz"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestNullableUUID(t *testing.T) {
	assert.Nil(t, nullableUUID(""))
	assert.Equal(t, "abc", nullableUUID("abc"))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestItemRepo_StockExpression(t *testing.T) {
	assert.Equal(t, counterStockExpr, NewItemRepository(nil, false).stockExpr)
	assert.Equal(t, derivedStockExpr, NewItemRepository(nil, true).stockExpr)
}

func TestLockTimeoutParam(t *testing.T) {
	assert.Equal(t, "1500ms", lockTimeoutParam(1500*time.Millisecond))
	assert.Equal(t, "5000ms", lockTimeoutParam(5*time.Second))
	assert.Equal(t, "0", lockTimeoutParam(0))
}
