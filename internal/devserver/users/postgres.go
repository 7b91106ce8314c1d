package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/creatorlink/creatorlink/internal/dbx"
	"github.com/creatorlink/creatorlink/internal/devserver/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepository stores accounts in postgres via the pgx stdlib driver.
// It works over dbx.DBTX so callers may hand it either a *sql.DB or an open
// transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InitPostgres opens the database at dsn and applies migrations.
func InitPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// InTx runs fn inside a database transaction. When the repository already
// wraps a transaction the function runs on it directly.
func (r *PostgresRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return fn(r)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(NewPostgresRepository(tx))
	})
}

const userColumns = `id, email, password_hash, role, full_name, bio, company, youtube_channel_url, profile_completed, created_at`

func scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName,
		&u.Bio, &u.Company, &u.YouTubeChannelURL, &u.ProfileCompleted, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `
		INSERT INTO users (email, password_hash, role, full_name, bio, company, youtube_channel_url, profile_completed)
		VALUES (lower($1), $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO NOTHING
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.FullName,
		user.Bio, user.Company, user.YouTubeChannelURL, user.ProfileCompleted)

	u, err := scanUser(row)
	if errors.Is(err, ErrNotFound) {
		// The conflict branch returns no row.
		return nil, ErrEmailTaken
	}
	return u, err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) Update(ctx context.Context, user *User) (*User, error) {
	query := `
		UPDATE users
		SET role = $2, full_name = $3, bio = $4, company = $5,
		    youtube_channel_url = $6, profile_completed = $7
		WHERE id = $1
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		user.ID, user.Role, user.FullName, user.Bio, user.Company,
		user.YouTubeChannelURL, user.ProfileCompleted)
	return scanUser(row)
}
