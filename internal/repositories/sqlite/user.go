// Package sqlite stores user records in a local sqlite file, emulating one
// key-value table per prefixed table name.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/repositories"
)

// UserRepository implements repositories.UserRepository for SQLite
type UserRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new SQLite user repository. The users table
// must already exist; see database.ConnectionManager.
func NewUserRepository(db *sql.DB, logger *logrus.Logger) *UserRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Put upserts the user row, so the last write for an email wins
func (r *UserRepository) Put(ctx context.Context, table string, user *models.User) error {
	if table == "" {
		return repositories.NewRepositoryError("put", table, user.Email, repositories.ErrInvalidTable)
	}
	if user.Email == "" {
		return repositories.NewRepositoryError("put", table, "", repositories.ErrInvalidID)
	}

	query := `
		INSERT INTO users (table_name, email, first_name, last_name, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(table_name, email) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			updated_at = excluded.updated_at`

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query, table, user.Email, user.FirstName, user.LastName, time.Now().UTC())
	r.logQuery("put", table, time.Since(start), err)

	if err != nil {
		return repositories.NewRepositoryError("put", table, user.Email, err)
	}
	return nil
}

// Get retrieves the user row for the email in the given table
func (r *UserRepository) Get(ctx context.Context, table, email string) (*models.User, error) {
	if table == "" {
		return nil, repositories.NewRepositoryError("get", table, email, repositories.ErrInvalidTable)
	}
	if email == "" {
		return nil, repositories.NewRepositoryError("get", table, "", repositories.ErrInvalidID)
	}

	query := `
		SELECT email, first_name, last_name
		FROM users
		WHERE table_name = ? AND email = ?`

	start := time.Now()
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, table, email).Scan(
		&user.Email,
		&user.FirstName,
		&user.LastName,
	)
	r.logQuery("get", table, time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError(table, email)
		}
		return nil, repositories.NewRepositoryError("get", table, email, err)
	}

	return user, nil
}

func (r *UserRepository) logQuery(operation, table string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     table,
		"duration":  duration,
	}

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
		return
	}
	r.logger.WithFields(fields).Debug("Query executed")
}
