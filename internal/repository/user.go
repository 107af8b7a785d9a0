package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/kringe-music/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByLoginOrEmail returns the user whose login or email equals identifier.
// Wraps pgx.ErrNoRows when there is none.
func (r *UserRepository) FindByLoginOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT login, password, email,
		       COALESCE(created_at, CURRENT_TIMESTAMP) AS created_at
		FROM users
		WHERE login = $1 OR email = $1
		LIMIT 1`, identifier)
	if err != nil {
		return nil, fmt.Errorf("query user %q: %w", identifier, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("collect user %q: %w", identifier, err)
	}
	return user, nil
}

// Taken reports which of login and email already belong to some user.
func (r *UserRepository) Taken(ctx context.Context, login, email string) (loginTaken, emailTaken bool, err error) {
	rows, err := r.pool.Query(ctx, `
		SELECT login, email
		FROM users
		WHERE login = $1 OR email = $2`, login, email)
	if err != nil {
		return false, false, fmt.Errorf("query taken credentials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l, e string
		if err := rows.Scan(&l, &e); err != nil {
			return false, false, fmt.Errorf("scan taken credentials: %w", err)
		}
		loginTaken = loginTaken || l == login
		emailTaken = emailTaken || e == email
	}
	if err := rows.Err(); err != nil {
		return false, false, fmt.Errorf("iterate taken credentials: %w", err)
	}

	return loginTaken, emailTaken, nil
}

// Create inserts a user. passwordHash must already be hashed.
// Unique violations surface as *pgconn.PgError.
func (r *UserRepository) Create(ctx context.Context, login, email, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (login, email, password)
		VALUES ($1, $2, $3)`, login, email, passwordHash)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", login, err)
	}
	return nil
}
