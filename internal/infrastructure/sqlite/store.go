// Package sqlite is the SQLite-backed local store: the document slot the
// edit cycle persists into, and the seller preset records.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, no CGO

	"github.com/invoicepdf/invoice-api/internal/application/document"
	"github.com/invoicepdf/invoice-api/internal/application/presets"
	"github.com/invoicepdf/invoice-api/internal/domain"
	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

// The working document occupies a single fixed slot.
const currentDocumentKey = "current"

var (
	_ document.Storage   = (*Store)(nil)
	_ presets.Repository = (*Store)(nil)
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath, creating parent
// directories and running migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument overwrites the current document slot.
func (s *Store) SaveDocument(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		currentDocumentKey, string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// LoadDocument reads the current document slot, domain.ErrNotFound when
// nothing has been saved yet.
func (s *Store) LoadDocument(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM documents WHERE key = ?", currentDocumentKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return []byte(payload), nil
}

// ListSellers returns every stored preset ordered by name.
func (s *Store) ListSellers(ctx context.Context) ([]invoice.Seller, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM seller_presets ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var out []invoice.Seller
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		var seller invoice.Seller
		if err := json.Unmarshal([]byte(payload), &seller); err != nil {
			return nil, fmt.Errorf("decode seller: %w", err)
		}
		out = append(out, seller)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sellers: %w", err)
	}
	return out, nil
}

func (s *Store) GetSeller(ctx context.Context, id string) (*invoice.Seller, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM seller_presets WHERE id = ?", id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}
	var seller invoice.Seller
	if err := json.Unmarshal([]byte(payload), &seller); err != nil {
		return nil, fmt.Errorf("decode seller: %w", err)
	}
	return &seller, nil
}

func (s *Store) SaveSeller(ctx context.Context, seller invoice.Seller) error {
	payload, err := json.Marshal(seller)
	if err != nil {
		return fmt.Errorf("encode seller: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO seller_presets (id, name, payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, payload = excluded.payload, updated_at = excluded.updated_at`,
		seller.ID, seller.Name, string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save seller: %w", err)
	}
	return nil
}

func (s *Store) DeleteSeller(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM seller_presets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
