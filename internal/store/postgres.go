package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careervisualizer/backend/internal/models"
)

// PostgresStore keeps career records and, optionally, the user table in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS career_records (
			id          UUID PRIMARY KEY,
			name        TEXT        NOT NULL,
			career      TEXT        NOT NULL,
			recorded_on VARCHAR(10) NOT NULL,
			created_at  TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS app_users (
			email         VARCHAR(255) PRIMARY KEY,
			password_hash VARCHAR(255) NOT NULL,
			role          VARCHAR(16)  NOT NULL CHECK (role IN ('admin', 'user'))
		)
	`)
	return err
}

func (s *PostgresStore) AppendRow(ctx context.Context, rec models.CareerRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO career_records (id, name, career, recorded_on) VALUES ($1, $2, $3, $4)`,
		uuid.New(), rec.Name, rec.Career, rec.Date,
	)
	if err != nil {
		return fmt.Errorf("insert career record: %w", err)
	}
	return nil
}

// LoadUsers reads the whole app_users table.
func (s *PostgresStore) LoadUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT email, password_hash, role FROM app_users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.Email, &u.PasswordHash, &role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = models.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}
