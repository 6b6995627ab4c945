package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kculture-backend/internal/domains/user"
	"kculture-backend/internal/shared/query"
)

var userColumns = []string{
	"id", "email", "password_hash", "full_name", "role",
	"is_active", "is_verified", "created_at", "updated_at", "last_login",
}

// Descriptor wires the users table into the generic query service. Users have
// no text search and no view counter.
func Descriptor() *query.Descriptor[user.User] {
	return &query.Descriptor[user.User]{
		Table:   "users",
		Columns: userColumns,
		Fields: map[string]query.Field{
			"id":            {Column: "id"},
			"email":         {Column: "email"},
			"password_hash": {Column: "password_hash"},
			"full_name":     {Column: "full_name"},
			"role":          {Column: "role"},
			"is_active":     {Column: "is_active"},
			"is_verified":   {Column: "is_verified"},
			"created_at":    {Column: "created_at"},
			"updated_at":    {Column: "updated_at"},
			"last_login":    {Column: "last_login"},
		},
		DefaultOrder: []string{"-created_at"},
		Scan:         scanUser,
	}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PostgresRepository owns user persistence.
type PostgresRepository struct {
	pool  *pgxpool.Pool
	users *query.Service[user.User]
}

func NewPostgresRepository(pool *pgxpool.Pool) (*PostgresRepository, error) {
	svc, err := query.NewService(pool, Descriptor())
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{pool: pool, users: svc}, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.users.Get(ctx, id, false)
}

// GetByEmail matches the stored email exactly, including case.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.users.GetByField(ctx, "email", email)
}

// Create inserts a new account with the default flags.
func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash, fullName string) (*user.User, error) {
	return r.users.Create(ctx, query.NewValues().
		Set("email", email).
		Set("password_hash", passwordHash).
		Set("full_name", fullName).
		Set("role", string(user.RoleUser)).
		Set("is_active", true).
		Set("is_verified", false))
}

// UpdateRole switches between user and admin.
func (r *PostgresRepository) UpdateRole(ctx context.Context, id int64, role user.Role) (*user.User, error) {
	return r.users.Update(ctx, id, query.NewValues().Set("role", string(role)))
}

// SetActive flips the account's active flag.
func (r *PostgresRepository) SetActive(ctx context.Context, id int64, active bool) (*user.User, error) {
	return r.users.Update(ctx, id, query.NewValues().Set("is_active", active))
}

// TouchLastLogin stamps a successful login.
func (r *PostgresRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET last_login = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, p query.ListParams) ([]*user.User, int, error) {
	return r.users.List(ctx, p)
}
