// Package store implements the persistence of users, contacts and addresses on MySQL.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a row that is looked up does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key.
var ErrDuplicate = errors.New("duplicate entry")

// mysqlDuplicateEntry is the MySQL server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// Store bundles the repositories that share one database handle.
type Store struct {
	db        *sqlx.DB
	Users     *UserStore
	Contacts  *ContactStore
	Addresses *AddressStore
}

// Open opens a connection pool to the database with the given data source name.
func Open(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	return sqlDB, nil
}

// New initializes the sqlx database wrapper with the specified sql database and prepares the
// statements of all repositories. The database argument can be a real database for production
// use or a mock database within unit tests.
func New(sqlDB *sql.DB) (*Store, error) {
	db := sqlx.NewDb(sqlDB, "mysql")
	users, err := newUserStore(db)
	if err != nil {
		return nil, err
	}
	contacts, err := newContactStore(db)
	if err != nil {
		return nil, errors.Join(err, users.close())
	}
	return &Store{
		db:        db,
		Users:     users,
		Contacts:  contacts,
		Addresses: newAddressStore(db),
	}, nil
}

// Close releases the prepared statements and the underlying database.
func (s *Store) Close() error {
	return errors.Join(s.Users.close(), s.Contacts.close(), s.db.Close())
}

// isDuplicate reports whether err is a unique key violation of the MySQL server.
func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// affected returns the number of rows changed by a statement.
func affected(result sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
