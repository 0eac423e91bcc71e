package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/repositories"
)


func TestUserRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := models.NewUser("a@b.com", "A", "B")
	require.NoError(t, repo.Put(ctx, "PRD-User", user))

	// stored copies are not aliased to the caller's value
	user.FirstName = "changed"

	got, err := repo.Get(ctx, "PRD-User", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "A", got.FirstName)

	require.NoError(t, repo.Put(ctx, "PRD-User", models.NewUser("a@b.com", "C", "D")))
	got, err = repo.Get(ctx, "PRD-User", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "C", got.FirstName)
	assert.Equal(t, 1, repo.Len())

	_, err = repo.Get(ctx, "DEV-User", "a@b.com")
	assert.True(t, repositories.IsNotFound(err))
}

func TestUserRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewUserRepository()
	assert.ErrorIs(t, repo.Put(ctx, "PRD-User", models.NewUser("a@b.com", "A", "B")), context.Canceled)
	_, err := repo.Get(ctx, "PRD-User", "a@b.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@b.com", i)
			assert.NoError(t, repo.Put(ctx, "PRD-User", models.NewUser(email, "F", "L")))
			_, err := repo.Get(ctx, "PRD-User", email)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, repo.Len())
}
