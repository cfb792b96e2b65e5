package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PostgresStore persists account documents in a key-value table with jsonb
// values:
//
//	CREATE TABLE pos_documents (key TEXT PRIMARY KEY, value JSONB NOT NULL);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, email string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc Document
	if err := s.loadKey(ctx, ProductsKey(email), &doc.Products); err != nil {
		return Document{}, err
	}
	if err := s.loadKey(ctx, SalesKey(email), &doc.Sales); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *PostgresStore) loadKey(ctx context.Context, key string, dst any) error {
	query := `SELECT value FROM pos_documents WHERE key = $1`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (s *PostgresStore) Save(ctx context.Context, email string, doc Document) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	products, err := json.Marshal(doc.Products)
	if err != nil {
		return err
	}
	sales, err := json.Marshal(doc.Sales)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO pos_documents (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := tx.ExecContext(ctx, query, ProductsKey(email), products); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, SalesKey(email), sales); err != nil {
		return err
	}
	return tx.Commit()
}
