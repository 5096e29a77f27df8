package repository

import (
	"context"
	"fmt"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Integration(t *testing.T) {
	repo := NewCommentRepository(testDB)
	ctx := context.Background()

	author := newTestUser(t, "cauthor")
	post := &models.Post{Title: "commented", Text: "t", AuthorID: author.ID}
	require.NoError(t, testDB.Create(post).Error)

	t.Run("Create and ListByPost oldest first", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			c := &models.Comment{Text: fmt.Sprintf("comment %d", i), AuthorID: author.ID, PostID: post.ID}
			require.NoError(t, repo.Create(ctx, c))
		}

		comments, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, "comment 0", comments[0].Text)
		assert.Equal(t, "comment 2", comments[2].Text)
		assert.Equal(t, author.Username, comments[0].Author.Username)
	})

	t.Run("Create on missing post rejected", func(t *testing.T) {
		err := repo.Create(ctx, &models.Comment{Text: "ghost", AuthorID: author.ID, PostID: 999999})
		assert.True(t, models.HasCode(err, models.CodeConstraintViolation))
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999999)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		c := &models.Comment{Text: "delete me", AuthorID: author.ID, PostID: post.ID}
		require.NoError(t, repo.Create(ctx, c))
		require.NoError(t, repo.Delete(ctx, c.ID))

		_, err := repo.GetByID(ctx, c.ID)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}
