package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/shoplist/internal/model"
)

// Store is durable CRUD over the shopping item table.
//
// Update and Delete on an id that does not exist are silent no-ops.
// Implementations block; callers are expected to run them off the UI loop.
type Store interface {
	// List returns every item, newest (highest id) first.
	List(ctx context.Context) ([]model.ShoppingItem, error)
	// Insert persists item and returns it with its assigned id.
	// A non-zero id that already exists is replaced.
	Insert(ctx context.Context, item model.ShoppingItem) (model.ShoppingItem, error)
	Update(ctx context.Context, item model.ShoppingItem) error
	Delete(ctx context.Context, item model.ShoppingItem) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3, needs cgo
	DriverJSON    = "json"
	DriverMemory  = "memory"
)

// schemaVersion is the only on-disk layout this build understands.
const schemaVersion = 1

var (
	ErrUnknownDriver     = errors.New("unknown store driver")
	ErrUnsupportedSchema = errors.New("unsupported schema version")
	ErrLocked            = errors.New("store is locked by another process")
)

// Open builds the store for driver at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverSQLite, DriverSQLite3:
		return NewSQLiteStore(driver, path)
	case DriverJSON:
		return NewJSONStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
