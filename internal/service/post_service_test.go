package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopLikeRepo())
	ctx := context.Background()

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Text: "body"})
		assertValidationError(t, err)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Title: "Title", Text: "   "})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_Success(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		return nil
	}
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "Title", Text: "body", AuthorID: 1}, nil
	}

	svc := NewPostService(postRepo, noopLikeRepo())
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 1,
		Title:    "  Title  ",
		Text:     "body",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), post.ID)
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-author cannot edit", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 10}, nil
		}
		svc := NewPostService(postRepo, noopLikeRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Title: "t", Text: "x"})
		assertUnauthorizedError(t, err)
	})

	t.Run("author can edit and regroup", func(t *testing.T) {
		t.Parallel()
		var saved *models.Post
		groupID := uint(3)
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			if saved != nil {
				return saved, nil
			}
			return &models.Post{ID: id, AuthorID: 1, Title: "old", Text: "old"}, nil
		}
		postRepo.updateFn = func(_ context.Context, p *models.Post) error {
			saved = p
			return nil
		}
		svc := NewPostService(postRepo, noopLikeRepo())
		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			UserID: 1, PostID: 1, Title: "new", Text: "new body", GroupID: &groupID,
		})
		require.NoError(t, err)
		assert.Equal(t, "new", post.Title)
		require.NotNil(t, post.GroupID)
		assert.Equal(t, groupID, *post.GroupID)
	})
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("author can delete", func(t *testing.T) {
		t.Parallel()
		deleted := false
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1}, nil
		}
		postRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewPostService(postRepo, noopLikeRepo())
		require.NoError(t, svc.DeletePost(context.Background(), 1, 1))
		assert.True(t, deleted)
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 10}, nil
		}
		svc := NewPostService(postRepo, noopLikeRepo())
		err := svc.DeletePost(context.Background(), 1, 1)
		assertUnauthorizedError(t, err)
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("toggles and returns refreshed post", func(t *testing.T) {
		t.Parallel()
		toggled := false
		likeRepo := noopLikeRepo()
		likeRepo.toggleFn = func(_ context.Context, _, _ uint) (models.LikeValue, error) {
			toggled = true
			return models.LikeValueLike, nil
		}
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			p := &models.Post{ID: id, AuthorID: 2}
			if toggled {
				p.LikesCount = 1
				p.Liked = true
			}
			return p, nil
		}
		svc := NewPostService(postRepo, likeRepo)
		post, err := svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.True(t, post.Liked)
		assert.Equal(t, 1, post.LikesCount)
	})

	t.Run("missing post propagates not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", 99)
		}
		svc := NewPostService(postRepo, noopLikeRepo())
		_, err := svc.ToggleLike(context.Background(), 1, 99)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestPostService_IndexPosts_Cache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.SetClient(nil)

	dbCalls := 0
	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) {
		dbCalls++
		return []*models.Post{{ID: 1, Title: "cached"}}, nil
	}
	postRepo.countFn = func(_ context.Context) (int64, error) { return 1, nil }

	svc := NewPostService(postRepo, noopLikeRepo())
	ctx := context.Background()

	posts, total, err := svc.IndexPosts(ctx, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 1, dbCalls)

	// Second read is served from the page cache.
	posts, _, err = svc.IndexPosts(ctx, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "cached", posts[0].Title)
	assert.Equal(t, 1, dbCalls)

	// Expiry forces a refetch; writes never clear the page, it just ages out.
	mr.FastForward(cache.IndexTTL + 1)
	_, _, err = svc.IndexPosts(ctx, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, dbCalls)

	// ClearView is the manual escape hatch.
	_, _, err = svc.IndexPosts(ctx, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, dbCalls)
	cache.ClearView(ctx, "index")
	_, _, err = svc.IndexPosts(ctx, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, dbCalls)
}

func TestPostService_IndexPosts_LikedFlags(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.SetClient(nil)

	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, _, _ int, currentUserID uint) ([]*models.Post, error) {
		// The cached rendering is always anonymous.
		require.Zero(t, currentUserID)
		return []*models.Post{{ID: 1}, {ID: 2}}, nil
	}
	postRepo.countFn = func(_ context.Context) (int64, error) { return 2, nil }
	likeRepo := noopLikeRepo()
	likeRepo.likedPostsFn = func(_ context.Context, userID uint, postIDs []uint) ([]uint, error) {
		require.Equal(t, uint(42), userID)
		require.Equal(t, []uint{1, 2}, postIDs)
		return []uint{2}, nil
	}

	svc := NewPostService(postRepo, likeRepo)
	posts, _, err := svc.IndexPosts(context.Background(), 10, 0, 42)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.False(t, posts[0].Liked)
	assert.True(t, posts[1].Liked)
}

func TestPostService_FeedPosts(t *testing.T) {
	t.Parallel()

	t.Run("repo error propagates", func(t *testing.T) {
		t.Parallel()
		repoErr := errors.New("db down")
		postRepo := noopPostRepo()
		postRepo.listByFollowedFn = func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, repoErr
		}
		svc := NewPostService(postRepo, noopLikeRepo())
		_, _, err := svc.FeedPosts(context.Background(), 1, 10, 0)
		assert.ErrorIs(t, err, repoErr)
	})

	t.Run("returns followed posts with liked flags", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.listByFollowedFn = func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return []*models.Post{{ID: 5}}, nil
		}
		postRepo.countFollowedFn = func(_ context.Context, _ uint) (int64, error) { return 1, nil }
		likeRepo := noopLikeRepo()
		likeRepo.likedPostsFn = func(_ context.Context, _ uint, _ []uint) ([]uint, error) {
			return []uint{5}, nil
		}
		svc := NewPostService(postRepo, likeRepo)
		posts, total, err := svc.FeedPosts(context.Background(), 1, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.EqualValues(t, 1, total)
		assert.True(t, posts[0].Liked)
	})
}
