package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain/user"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash, role string) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1,$2,$3,$4)
		RETURNING id, email, COALESCE(name,''), password_hash, role, is_active, created_at, updated_at
	`, email, name, passwordHash, role).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(name,''), password_hash, role, is_active, created_at, updated_at
		FROM users WHERE email=$1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(name,''), password_hash, role, is_active, created_at, updated_at
		FROM users WHERE id=$1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepo) UpdateName(ctx context.Context, id int64, name string) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, `
		UPDATE users SET name=$2, updated_at=now()
		WHERE id=$1
		RETURNING id, email, COALESCE(name,''), password_hash, role, is_active, created_at, updated_at
	`, id, name).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
