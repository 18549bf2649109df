package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/shoplist/internal/model"
)

const createSchema = `
	CREATE TABLE IF NOT EXISTS shopping_items (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		name      TEXT NOT NULL,
		is_bought INTEGER NOT NULL DEFAULT 0
	);
`

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path using the
// given database/sql driver name ("sqlite" or "sqlite3").
// Parent directories are created for file-backed databases.
func NewSQLiteStore(driver, path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store", "driver", driver)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: single writer, and ":memory:" stays a single database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("%w: database has %d, want %d", ErrUnsupportedSchema, version, schemaVersion)
	}
	if _, err := s.db.Exec(createSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if version == 0 {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("stamping schema version: %w", err)
		}
	}
	return nil
}

// List returns all items ordered by id descending.
func (s *SQLiteStore) List(ctx context.Context) ([]model.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, is_bought FROM shopping_items ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := []model.ShoppingItem{}
	for rows.Next() {
		var it model.ShoppingItem
		if err := rows.Scan(&it.ID, &it.Name, &it.IsBought); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// Insert adds item. With a zero id SQLite assigns the next one; an explicit
// id that is already taken replaces that row.
func (s *SQLiteStore) Insert(ctx context.Context, item model.ShoppingItem) (model.ShoppingItem, error) {
	var (
		res sql.Result
		err error
	)
	if item.ID == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO shopping_items (name, is_bought) VALUES (?, ?)`,
			item.Name, item.IsBought)
	} else {
		res, err = s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO shopping_items (id, name, is_bought) VALUES (?, ?, ?)`,
			item.ID, item.Name, item.IsBought)
	}
	if err != nil {
		return model.ShoppingItem{}, fmt.Errorf("inserting item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ShoppingItem{}, fmt.Errorf("reading inserted id: %w", err)
	}
	item.ID = id
	s.logger.Debug("item inserted", "id", id)
	return item, nil
}

// Update overwrites name and bought state of the row with item.ID.
func (s *SQLiteStore) Update(ctx context.Context, item model.ShoppingItem) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET name = ?, is_bought = ? WHERE id = ?`,
		item.Name, item.IsBought, item.ID)
	if err != nil {
		return fmt.Errorf("updating item %d: %w", item.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.logger.Debug("update matched no row", "id", item.ID)
	}
	return nil
}

// Delete removes the row with item.ID.
func (s *SQLiteStore) Delete(ctx context.Context, item model.ShoppingItem) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, item.ID); err != nil {
		return fmt.Errorf("deleting item %d: %w", item.ID, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
