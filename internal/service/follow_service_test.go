package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates the subscription", func(t *testing.T) {
		t.Parallel()
		var created *models.Follow
		followRepo := noopFollowRepo()
		followRepo.createFn = func(_ context.Context, f *models.Follow) error {
			created = f
			return nil
		}
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 7, Username: username}, nil
		}
		svc := NewFollowService(followRepo, userRepo)
		require.NoError(t, svc.Follow(ctx, 1, "author"))
		require.NotNil(t, created)
		assert.Equal(t, uint(1), created.UserID)
		assert.Equal(t, uint(7), created.AuthorID)
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		}
		svc := NewFollowService(noopFollowRepo(), userRepo)
		err := svc.Follow(ctx, 1, "me")
		assertValidationError(t, err)
	})

	t.Run("duplicate follow is a no-op", func(t *testing.T) {
		t.Parallel()
		followRepo := noopFollowRepo()
		followRepo.createFn = func(_ context.Context, _ *models.Follow) error {
			return models.NewConstraintViolationError("You already follow this author", nil)
		}
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 7, Username: username}, nil
		}
		svc := NewFollowService(followRepo, userRepo)
		assert.NoError(t, svc.Follow(ctx, 1, "author"))
	})

	t.Run("unknown author propagates not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", username)
		}
		svc := NewFollowService(noopFollowRepo(), userRepo)
		err := svc.Follow(ctx, 1, "ghost")
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Parallel()

	deletedUser, deletedAuthor := uint(0), uint(0)
	followRepo := noopFollowRepo()
	followRepo.deleteFn = func(_ context.Context, userID, authorID uint) error {
		deletedUser, deletedAuthor = userID, authorID
		return nil
	}
	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 7, Username: username}, nil
	}
	svc := NewFollowService(followRepo, userRepo)
	require.NoError(t, svc.Unfollow(context.Background(), 1, "author"))
	assert.Equal(t, uint(1), deletedUser)
	assert.Equal(t, uint(7), deletedAuthor)
}

func TestFollowService_IsFollowing_Anonymous(t *testing.T) {
	t.Parallel()

	followRepo := noopFollowRepo()
	followRepo.existsFn = func(_ context.Context, _, _ uint) (bool, error) {
		t.Fatal("Exists should not be called for anonymous users")
		return false, nil
	}
	svc := NewFollowService(followRepo, noopUserRepo())
	following, err := svc.IsFollowing(context.Background(), 0, 7)
	require.NoError(t, err)
	assert.False(t, following)
}
