// Package postgres implements the app.Repository interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"

	"guestbook/app"
	"guestbook/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type PgRepository struct {
	db *sqlx.DB
}

// Compile-time check that PgRepository implements app.Repository.
var _ app.Repository = (*PgRepository)(nil)

// NewPgRepository opens the database, configures the connection pool and
// applies any pending migrations.
func NewPgRepository(databaseURL string) (*PgRepository, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PgRepository{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

func (r *PgRepository) CreateComment(ctx context.Context, name, msg string, ts time.Time) (domain.Comment, error) {
	var c domain.Comment
	query := `
		INSERT INTO comments (name, msg, ts, approved)
		VALUES ($1, $2, $3, TRUE)
		RETURNING *`

	err := r.db.QueryRowxContext(ctx, query, name, msg, ts).StructScan(&c)
	return c, err
}

func (r *PgRepository) ListApprovedComments(ctx context.Context, limit, offset int) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0)
	query := `SELECT * FROM comments WHERE approved = TRUE ORDER BY ts DESC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &comments, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *PgRepository) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	var c domain.Comment
	query := `SELECT * FROM comments WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	return c, err
}

func (r *PgRepository) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
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
