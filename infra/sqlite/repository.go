// Package sqlite implements the app.Repository interface on a local SQLite
// file, the default backend when no postgres:// URL is configured.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"

	"guestbook/app"
	"guestbook/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Repository struct {
	db *sqlx.DB
}

// Compile-time check that Repository implements app.Repository.
var _ app.Repository = (*Repository)(nil)

// NewRepository opens (or creates) the database file at path and applies
// any pending migrations. The pool is capped at one connection: SQLite
// serializes writes anyway, and a shared in-memory database must not be
// opened twice.
func NewRepository(path string) (*Repository, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) CreateComment(ctx context.Context, name, msg string, ts time.Time) (domain.Comment, error) {
	var c domain.Comment
	query := `INSERT INTO comments (name, msg, ts, approved) VALUES (?, ?, ?, TRUE)`

	res, err := r.db.ExecContext(ctx, query, name, msg, ts.UTC())
	if err != nil {
		return c, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return c, err
	}

	return r.GetComment(ctx, id)
}

func (r *Repository) ListApprovedComments(ctx context.Context, limit, offset int) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0)
	query := `SELECT * FROM comments WHERE approved = TRUE ORDER BY ts DESC LIMIT ? OFFSET ?`

	err := r.db.SelectContext(ctx, &comments, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *Repository) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	var c domain.Comment
	query := `SELECT * FROM comments WHERE id = ?`

	err := r.db.GetContext(ctx, &c, query, id)
	return c, err
}

func (r *Repository) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
