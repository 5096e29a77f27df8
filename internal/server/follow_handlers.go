package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Profile handles GET /profile/:username (an author's post listing).
func (s *Server) Profile(c *fiber.Ctx) error {
	username := c.Params("username")
	profile, err := s.userService.GetProfile(c.Context(), username)
	if err != nil {
		return s.handleViewError(c, err)
	}

	currentUserID := s.currentUserID(c)
	posts, page, err := fetchPostPage(parsePage(c), func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postService.AuthorPosts(c.Context(), profile.User.ID, limit, offset, currentUserID)
	})
	if err != nil {
		return s.handleViewError(c, err)
	}

	following, err := s.followService.IsFollowing(c.Context(), currentUserID, profile.User.ID)
	if err != nil {
		return s.handleViewError(c, err)
	}

	return c.JSON(fiber.Map{
		"view":         "profile",
		"author":       profile.User,
		"followers":    profile.Followers,
		"following":    profile.Following,
		"is_following": following,
		"posts":        posts,
		"page":         page,
	})
}

// FollowFeed handles GET /follow (posts by authors the user follows).
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	posts, page, err := fetchPostPage(parsePage(c), func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postService.FeedPosts(c.Context(), userID, limit, offset)
	})
	if err != nil {
		return s.handleViewError(c, err)
	}

	return c.JSON(fiber.Map{
		"view":  "follow_feed",
		"posts": posts,
		"page":  page,
	})
}

// Follow handles POST /profile/:username/follow. Following yourself or
// someone you already follow just lands back on the profile.
func (s *Server) Follow(c *fiber.Ctx) error {
	username := c.Params("username")
	profilePath := "/profile/" + username

	err := s.followService.Follow(c.Context(), s.currentUserID(c), username)
	if err != nil {
		if models.HasCode(err, models.CodeValidation) {
			return seeOther(c, profilePath)
		}
		return s.handleMutationError(c, err, profilePath)
	}
	return seeOther(c, profilePath)
}

// Unfollow handles POST /profile/:username/unfollow
func (s *Server) Unfollow(c *fiber.Ctx) error {
	username := c.Params("username")
	profilePath := "/profile/" + username

	if err := s.followService.Unfollow(c.Context(), s.currentUserID(c), username); err != nil {
		return s.handleMutationError(c, err, profilePath)
	}
	return seeOther(c, profilePath)
}
