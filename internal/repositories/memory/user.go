// Package memory keeps user records in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/repositories"
)

type tableKey struct {
	table string
	email string
}

// UserRepository implements repositories.UserRepository with a guarded map
type UserRepository struct {
	mu    sync.RWMutex
	users map[tableKey]models.User
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[tableKey]models.User),
	}
}

// Put stores a copy of the user, replacing any earlier record for the email
func (r *UserRepository) Put(ctx context.Context, table string, user *models.User) error {
	if table == "" {
		return repositories.NewRepositoryError("put", table, user.Email, repositories.ErrInvalidTable)
	}
	if user.Email == "" {
		return repositories.NewRepositoryError("put", table, "", repositories.ErrInvalidID)
	}
	if err := ctx.Err(); err != nil {
		return repositories.NewRepositoryError("put", table, user.Email, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[tableKey{table: table, email: user.Email}] = *user
	return nil
}

// Get returns a copy of the stored user
func (r *UserRepository) Get(ctx context.Context, table, email string) (*models.User, error) {
	if table == "" {
		return nil, repositories.NewRepositoryError("get", table, email, repositories.ErrInvalidTable)
	}
	if email == "" {
		return nil, repositories.NewRepositoryError("get", table, "", repositories.ErrInvalidID)
	}
	if err := ctx.Err(); err != nil {
		return nil, repositories.NewRepositoryError("get", table, email, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[tableKey{table: table, email: email}]
	if !ok {
		return nil, repositories.NotFoundError(table, email)
	}
	return &user, nil
}

// Len returns the number of stored records across all tables
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
