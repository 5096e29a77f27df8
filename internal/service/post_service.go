package service

import (
	"context"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Text     string
	GroupID  *uint
	ImageURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Text     string
	GroupID  *uint
	ImageURL string
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) *PostService {
	return &PostService{postRepo: postRepo, likeRepo: likeRepo}
}

// IndexPosts returns the newest-first post listing. The first page is served
// through a short-lived page cache; entries age out rather than being
// invalidated on writes, so a fresh post may take a few seconds to appear.
func (s *PostService) IndexPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	var posts []*models.Post
	var err error

	if offset == 0 {
		key := cache.ViewKey("index")
		found, getErr := cache.GetJSON(ctx, key, &posts)
		if getErr != nil {
			middleware.RedisErrors.WithLabelValues("get").Inc()
			found = false
		}
		if found {
			middleware.PageCacheHits.WithLabelValues("index", "hit").Inc()
		} else {
			middleware.PageCacheHits.WithLabelValues("index", "miss").Inc()
			// Cache the anonymous rendering; liked flags are re-applied below.
			posts, err = s.postRepo.List(ctx, limit, offset, 0)
			if err != nil {
				return nil, 0, err
			}
			_ = cache.SetJSON(ctx, key, posts, cache.IndexTTL)
		}

		if currentUserID != 0 && len(posts) > 0 {
			if err := s.applyLikedFlags(ctx, posts, currentUserID); err != nil {
				return nil, 0, err
			}
		}
	} else {
		posts, err = s.postRepo.List(ctx, limit, offset, currentUserID)
		if err != nil {
			return nil, 0, err
		}
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostService) applyLikedFlags(ctx context.Context, posts []*models.Post, userID uint) error {
	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	likedIDs, err := s.likeRepo.LikedPostIDs(ctx, userID, postIDs)
	if err != nil {
		return err
	}
	likedMap := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedMap[id] = true
	}
	for _, p := range posts {
		p.Liked = likedMap[p.ID]
	}
	return nil
}

func (s *PostService) GroupPosts(ctx context.Context, groupID uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	posts, err := s.postRepo.ListByGroup(ctx, groupID, limit, offset, currentUserID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostService) AuthorPosts(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID, limit, offset, currentUserID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// FeedPosts lists posts by the authors the user follows.
func (s *PostService) FeedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	posts, err := s.postRepo.ListByFollowed(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(posts) > 0 {
		if err := s.applyLikedFlags(ctx, posts, userID); err != nil {
			return nil, 0, err
		}
	}
	total, err := s.postRepo.CountByFollowed(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	post := &models.Post{
		Title:    strings.TrimSpace(in.Title),
		Text:     in.Text,
		ImageURL: in.ImageURL,
		AuthorID: in.AuthorID,
		GroupID:  in.GroupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.AuthorID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Text = in.Text
	post.GroupID = in.GroupID
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's like on a post and returns the refreshed post.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}
	if _, err := s.likeRepo.Toggle(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}
