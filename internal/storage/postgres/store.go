package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the full storage interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for the whole portal.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects a pool and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS roles (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id BIGINT NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		);`,
		`CREATE TABLE IF NOT EXISTS students (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS education (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			school TEXT NOT NULL DEFAULT '',
			degree TEXT NOT NULL DEFAULT '',
			start_year INT NOT NULL DEFAULT 0,
			end_year INT NOT NULL DEFAULT 0,
			gpa DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS experience (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			role TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			start_date DATE,
			end_date DATE,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			company TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			job_type TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			requirements TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS applications (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			job_id BIGINT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			applied_date DATE NOT NULL,
			status TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// FindUserByEmail fetches a user and their assigned roles.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT id, full_name, email, password_hash, created_at
	FROM users
	WHERE email = $1;`

	var user models.User
	row := s.pool.QueryRow(ctx, query, email)
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}

	roles, err := s.userRoles(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	user.Roles = roles
	return user, nil
}

func (s *Store) userRoles(ctx context.Context, userID int64) ([]models.Role, error) {
	const query = `
	SELECT r.id, r.name
	FROM roles r
	JOIN user_roles ur ON ur.role_id = r.id
	WHERE ur.user_id = $1
	ORDER BY r.id;`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// FindRoleByName fetches a role by its full (prefixed) name.
func (s *Store) FindRoleByName(ctx context.Context, name string) (models.Role, error) {
	var role models.Role
	row := s.pool.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1;`, name)
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Role{}, storage.ErrNotFound
		}
		return models.Role{}, err
	}
	return role, nil
}

// SaveUser inserts a user and their role assignments in one transaction.
func (s *Store) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback(ctx)

	const insert = `
	INSERT INTO users (full_name, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, created_at;`

	row := tx.QueryRow(ctx, insert, user.FullName, user.Email, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}

	for _, role := range user.Roles {
		if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2);`, user.ID, role.ID); err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CountRoles reports how many roles exist.
func (s *Store) CountRoles(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM roles;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SeedDefaultRoles inserts the three fixed roles. Callers invoke this once at
// process start when CountRoles reports an empty set.
func (s *Store) SeedDefaultRoles(ctx context.Context) error {
	const insert = `
	INSERT INTO roles (name) VALUES ($1), ($2), ($3)
	ON CONFLICT (name) DO NOTHING;`

	_, err := s.pool.Exec(ctx, insert, models.RoleAdmin, models.RoleStudent, models.RoleRecruiter)
	if err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
