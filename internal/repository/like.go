package repository

import (
	"context"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// Toggle flips the caller's like state for a post and reports the
	// resulting state.
	Toggle(ctx context.Context, userID, postID uint) (models.LikeValue, error)
	State(ctx context.Context, userID, postID uint) (models.LikeValue, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
	// LikedPostIDs filters postIDs down to those the user currently likes.
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, userID, postID uint) (models.LikeValue, error) {
	var result models.LikeValue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
		switch {
		case err == nil:
			if like.Value == models.LikeValueLike {
				like.Value = models.LikeValueUnlike
			} else {
				like.Value = models.LikeValueLike
			}
			if err := tx.Model(&like).Update("value", like.Value).Error; err != nil {
				return err
			}
			result = like.Value
			return nil
		case database.IsNotFound(err):
			like = models.Like{UserID: userID, PostID: postID, Value: models.LikeValueLike}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			result = models.LikeValueLike
			return nil
		default:
			return err
		}
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			// Concurrent first-like on the same post, the other writer won.
			return "", models.NewConstraintViolationError("Like was updated concurrently", err)
		}
		if database.IsConstraintViolation(err) {
			return "", models.NewConstraintViolationError("Like references a missing post or user", err)
		}
		return "", models.NewInternalError(err)
	}
	return result, nil
}

func (r *likeRepository) State(ctx context.Context, userID, postID uint) (models.LikeValue, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error
	if err != nil {
		if database.IsNotFound(err) {
			return models.LikeValueUnlike, nil
		}
		return "", models.NewInternalError(err)
	}
	return like.Value, nil
}

func (r *likeRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ? AND value = ?", userID, postIDs, models.LikeValueLike).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND value = ?", postID, models.LikeValueLike).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
