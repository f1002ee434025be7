package scope

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

// These tests pin the emitted SQL: the predicate column must be qualified
// with the base table so joins cannot shadow it, and unscoped reads must not
// carry a predicate at all.
func TestStoreSQL(t *testing.T) {
	caller := uuid.New()
	unitID := uuid.New()

	t.Run("unit context filters on the qualified unit column", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "benefit_records" WHERE benefit_records\.unit_id = \$1 ORDER BY created_at DESC`).
			WithArgs(unitID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "unit_id", "owner_id", "title"}))

		store := NewStore[benefitRecord](db)
		_, err := store.FindAll(unitContext(t, caller, unitID), shared.Filter{})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("own context filters on the qualified owner column", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "benefit_records" WHERE benefit_records\.owner_id = \$1 ORDER BY created_at DESC`).
			WithArgs(caller.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "unit_id", "owner_id", "title"}))

		store := NewStore[benefitRecord](db)
		_, err := store.FindAll(ownContext(t, caller), shared.Filter{})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("global context emits no predicate", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "benefit_records" ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "unit_id", "owner_id", "title"}))

		store := NewStore[benefitRecord](db)
		_, err := store.FindAll(globalContext(t, caller), shared.Filter{})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unscoped read ignores the installed context", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "benefit_records" ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "unit_id", "owner_id", "title"}))

		store := NewStore[benefitRecord](db)
		_, err := store.FindAllUnscoped(unitContext(t, caller, unitID), shared.Filter{})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
