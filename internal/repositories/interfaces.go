package repositories

import (
	"context"

	"github.com/collin-smith/CdkApp/internal/models"
)

// UserRepository is the key-value collaborator for user records.
// table is the physical table name, for example "PRD-User".
type UserRepository interface {
	// Put writes the record under its email, replacing any previous record
	Put(ctx context.Context, table string, user *models.User) error

	// Get performs a point lookup by email. It returns ErrNotFound when no
	// record exists; that is a normal outcome, not a storage failure.
	Get(ctx context.Context, table, email string) (*models.User, error)
}
