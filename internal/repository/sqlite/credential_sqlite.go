package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/mattn/go-sqlite3"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

// SQLiteCredentialRepository implements CredentialRepository backed by SQLite.
// The UNIQUE constraint on username makes the insert an atomic
// check-then-act: the database rejects the second of two racing
// registrations, not this code.
type SQLiteCredentialRepository struct {
	db *sql.DB
}

const createCredentialsTable = `
CREATE TABLE IF NOT EXISTS credentials (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	salt TEXT NOT NULL,
	verifier TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// NewSQLiteCredentialRepository creates the repository and ensures the
// credentials table exists.
func NewSQLiteCredentialRepository(db *sql.DB) (*SQLiteCredentialRepository, error) {
	if _, err := db.Exec(createCredentialsTable); err != nil {
		return nil, fmt.Errorf("failed to create credentials table: %w", err)
	}
	return &SQLiteCredentialRepository{db: db}, nil
}

func (r *SQLiteCredentialRepository) CreateCredential(ctx context.Context, cred *models.Credential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (username, salt, verifier) VALUES (?, ?, ?)`,
		cred.Username, cred.Salt, cred.Verifier.Text(16),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return repository.ErrUserExists
		}
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

func (r *SQLiteCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT salt, verifier FROM credentials WHERE username = ?`, username)

	var salt, verifierHex string
	if err := row.Scan(&salt, &verifierHex); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}

	verifier, ok := new(big.Int).SetString(verifierHex, 16)
	if !ok {
		return nil, fmt.Errorf("stored verifier for %q is not valid hex", username)
	}
	return &models.Credential{
		Username: username,
		Salt:     salt,
		Verifier: verifier,
	}, nil
}
