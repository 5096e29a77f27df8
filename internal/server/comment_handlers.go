package server

import (
	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return s.NotFound(c)
	}

	var form forms.CommentForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if errs := form.Validate(); !errs.Valid() {
		return renderForm(c, "post_detail", &form, errs)
	}

	_, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		AuthorID: s.currentUserID(c),
		PostID:   postID,
		Text:     form.Text,
	})
	if err != nil {
		return s.handleMutationError(c, err, postDetailPath(postID))
	}
	return seeOther(c, postDetailPath(postID))
}

// DeleteComment handles POST /posts/:id/comment/:commentId. Non-authors are
// silently sent back to the post.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return s.NotFound(c)
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return s.NotFound(c)
	}

	if err := s.commentService.DeleteComment(c.Context(), s.currentUserID(c), commentID); err != nil {
		return s.handleMutationError(c, err, postDetailPath(postID))
	}
	return seeOther(c, postDetailPath(postID))
}
