package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, name, password_hash, created_on) VALUES ($1, $2, $3, NULLIF($4, ''), $5)
	          ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name`
	u.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedOn)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	var hash sql.NullString
	query := `SELECT id, email, name, password_hash, created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &hash, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash.String
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	var hash sql.NullString
	query := `SELECT id, email, name, password_hash, created_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &hash, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash.String
	return u, nil
}
