package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/minipos/minipos/internal/models"
)

// PostgresAccountRepository stores accounts in the accounts table:
//
//	CREATE TABLE accounts (
//	    email TEXT PRIMARY KEY,
//	    name TEXT NOT NULL,
//	    password_hash TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresAccountRepository struct {
	db *sql.DB
}

func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) FindByEmail(email string) (models.Account, error) {
	query := `SELECT email, name, password_hash, created_at FROM accounts WHERE lower(email) = lower($1)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var a models.Account
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	return a, err
}

func (r *PostgresAccountRepository) Create(a models.Account) (models.Account, error) {
	query := `INSERT INTO accounts (email, name, password_hash, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, a.Email, a.Name, a.PasswordHash, a.CreatedAt)
	if err != nil {
		return models.Account{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Account{}, ErrDuplicateEmail
	}
	return a, nil
}
