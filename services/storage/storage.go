package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// queryTimeout bounds individual statements so a slow database cannot
// hold an HTTP handler indefinitely.
const queryTimeout = 5 * time.Second

// DB abstracts the database operations used by the storage layer.
// Satisfied by *pgxpool.Pool in production and pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Storage defines the interface for vault-application data access.
// The wizard finalizer and the review service both depend on this
// abstraction rather than on PostgreSQL directly.
type Storage interface {
	// SaveApplication persists a new application and returns its id.
	SaveApplication(ctx context.Context, app *VaultApplication) (uuid.UUID, error)
	// ListApplications returns every application, newest first.
	ListApplications(ctx context.Context) ([]VaultApplication, error)
	// GetApplication returns one application; pgx.ErrNoRows when missing.
	GetApplication(ctx context.Context, id uuid.UUID) (*VaultApplication, error)
	// UpdateStatus records a review decision. Returns false when the id is
	// unknown or the application has already left pending; terminal
	// states are never overwritten.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reviewer, reason string) (bool, error)
}

// PgStorage implements Storage using PostgreSQL. Exported so tests can
// construct it around a pgxmock pool.
type PgStorage struct {
	DB DB
}

// NewInstance creates a PostgreSQL-backed Storage implementation.
func NewInstance(db *pgxpool.Pool) (Storage, error) {
	if db == nil {
		return nil, fmt.Errorf("storage: db connection cannot be nil")
	}
	return &PgStorage{DB: db}, nil
}

func (r *PgStorage) SaveApplication(ctx context.Context, app *VaultApplication) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	formData, err := json.Marshal(app.FormData)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal form data: %w", err)
	}

	_, err = r.DB.Exec(ctx, `
        INSERT INTO vault_applications
            (id, kind, submitted_by, submitted_at, status, form_data)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		app.ID, app.Kind, app.SubmittedBy, app.SubmittedAt, app.Status, formData)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert application: %w", err)
	}

	return app.ID, nil
}

func (r *PgStorage) ListApplications(ctx context.Context) ([]VaultApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.Query(ctx, `
        SELECT id, kind, submitted_by, submitted_at, status, form_data,
               reviewed_by, reviewed_at, review_reason
        FROM vault_applications
        ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []VaultApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *PgStorage) GetApplication(ctx context.Context, id uuid.UUID) (*VaultApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.DB.QueryRow(ctx, `
        SELECT id, kind, submitted_by, submitted_at, status, form_data,
               reviewed_by, reviewed_at, review_reason
        FROM vault_applications
        WHERE id = $1`,
		id)

	return scanApplication(row)
}

// UpdateStatus moves a pending application to a terminal state. The
// status='pending' guard makes terminal states final: a second decision
// matches zero rows and reports false instead of overwriting the first.
func (r *PgStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reviewer, reason string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if status != StatusApproved && status != StatusRejected {
		return false, fmt.Errorf("invalid review status: %s", status)
	}

	tag, err := r.DB.Exec(ctx, `
        UPDATE vault_applications
        SET status = $2, reviewed_by = $3, reviewed_at = $4, review_reason = $5
        WHERE id = $1 AND status = 'pending'`,
		id, status, reviewer, time.Now(), nullable(reason))
	if err != nil {
		return false, fmt.Errorf("update status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// scanApplication hydrates one row; works for both QueryRow and Query
// iteration since pgx.Rows satisfies pgx.Row's Scan shape.
func scanApplication(row pgx.Row) (*VaultApplication, error) {
	var (
		app      VaultApplication
		formData []byte
	)
	err := row.Scan(
		&app.ID,
		&app.Kind,
		&app.SubmittedBy,
		&app.SubmittedAt,
		&app.Status,
		&formData,
		&app.ReviewedBy,
		&app.ReviewedAt,
		&app.ReviewReason,
	)
	if err != nil {
		return nil, err // pgx.ErrNoRows if not found
	}
	if len(formData) > 0 {
		if err := json.Unmarshal(formData, &app.FormData); err != nil {
			return nil, fmt.Errorf("unmarshal form data: %w", err)
		}
	}
	return &app, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
