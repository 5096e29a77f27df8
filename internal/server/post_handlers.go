package server

import (
	"fmt"
	"io"

	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET / (the main post listing).
func (s *Server) Index(c *fiber.Ctx) error {
	currentUserID := s.currentUserID(c)
	posts, page, err := fetchPostPage(parsePage(c), func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postService.IndexPosts(c.Context(), limit, offset, currentUserID)
	})
	if err != nil {
		return s.handleViewError(c, err)
	}
	return c.JSON(fiber.Map{
		"view":  "index",
		"posts": posts,
		"page":  page,
	})
}

// PostDetail handles GET /posts/:id
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return s.NotFound(c)
	}

	post, err := s.postService.GetPost(c.Context(), postID, s.currentUserID(c))
	if err != nil {
		return s.handleViewError(c, err)
	}
	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return s.handleViewError(c, err)
	}

	return c.JSON(fiber.Map{
		"view":         "post_detail",
		"post":         post,
		"comments":     comments,
		"comment_form": &forms.CommentForm{},
	})
}

// CreatePostForm handles GET /create
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return s.handleViewError(c, err)
	}
	return c.JSON(fiber.Map{
		"view":   "post_create",
		"form":   &forms.PostForm{},
		"groups": groups,
	})
}

// CreatePost handles POST /create. On success the author lands on their
// profile, where the new post is already visible.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if errs := form.Validate(); !errs.Valid() {
		return renderForm(c, "post_create", &form, errs)
	}

	imageURL, err := s.storeUploadedImage(c)
	if err != nil {
		if models.HasCode(err, models.CodeValidation) {
			return renderForm(c, "post_create", &form, map[string]string{"image": err.Error()})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Title:    form.Title,
		Text:     form.Text,
		GroupID:  form.GroupID,
		ImageURL: imageURL,
	})
	if err != nil {
		return s.handleMutationError(c, err, "/")
	}

	return seeOther(c, "/profile/"+post.Author.Username)
}

// EditPostForm handles GET /posts/:id/edit. Non-authors are sent back to
// the post detail instead of seeing the form.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return s.NotFound(c)
	}
	userID := s.currentUserID(c)

	post, err := s.postService.GetPost(c.Context(), postID, userID)
	if err != nil {
		return s.handleViewError(c, err)
	}
	if post.AuthorID != userID {
		return seeOther(c, postDetailPath(postID))
	}

	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return s.handleViewError(c, err)
	}
	return c.JSON(fiber.Map{
		"view": "post_edit",
		"form": &forms.PostForm{
			Title:    post.Title,
			Text:     post.Text,
			GroupID:  post.GroupID,
			ImageURL: post.ImageURL,
		},
		"post":   post,
		"groups": groups,
	})
}

// EditPost handles POST /posts/:id/edit
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return s.NotFound(c)
	}
	userID := s.currentUserID(c)

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if errs := form.Validate(); !errs.Valid() {
		return renderForm(c, "post_edit", &form, errs)
	}

	imageURL, err := s.storeUploadedImage(c)
	if err != nil {
		if models.HasCode(err, models.CodeValidation) {
			return renderForm(c, "post_edit", &form, map[string]string{"image": err.Error()})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	_, err = s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:   userID,
		PostID:   postID,
		Title:    form.Title,
		Text:     form.Text,
		GroupID:  form.GroupID,
		ImageURL: imageURL,
	})
	if err != nil {
		return s.handleMutationError(c, err, postDetailPath(postID))
	}
	return seeOther(c, postDetailPath(postID))
}

// DeletePost handles POST /posts/:id/delete
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return s.NotFound(c)
	}
	userID := s.currentUserID(c)

	if err := s.postService.DeletePost(c.Context(), userID, postID); err != nil {
		return s.handleMutationError(c, err, postDetailPath(postID))
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return seeOther(c, "/")
	}
	return seeOther(c, "/profile/"+user.Username)
}

// ToggleLike handles POST /liked. The post to toggle comes from the form
// body; the caller is sent back to the post afterwards.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	var form struct {
		PostID uint `json:"post_id" form:"post_id"`
	}
	if err := c.BodyParser(&form); err != nil || form.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	if _, err := s.postService.ToggleLike(c.Context(), userID, form.PostID); err != nil {
		return s.handleMutationError(c, err, postDetailPath(form.PostID))
	}
	return seeOther(c, postDetailPath(form.PostID))
}

func postDetailPath(postID uint) string {
	return fmt.Sprintf("/posts/%d", postID)
}

// storeUploadedImage saves an optional multipart image field and returns the
// served URL, or "" when no file was attached.
func (s *Server) storeUploadedImage(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached.
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	return s.imageService.Upload(service.UploadImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
}
