package server

import (
	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GroupPosts handles GET /group/:slug (a group's post listing).
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	group, err := s.groupService.GetGroupBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return s.handleViewError(c, err)
	}

	currentUserID := s.currentUserID(c)
	posts, page, err := fetchPostPage(parsePage(c), func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postService.GroupPosts(c.Context(), group.ID, limit, offset, currentUserID)
	})
	if err != nil {
		return s.handleViewError(c, err)
	}

	return c.JSON(fiber.Map{
		"view":  "group",
		"group": group,
		"posts": posts,
		"page":  page,
	})
}

// CreateGroupForm handles GET /group_create
func (s *Server) CreateGroupForm(c *fiber.Ctx) error {
	return renderForm(c, "group_create", &forms.GroupForm{}, nil)
}

// CreateGroup handles POST /group_create. Title and slug collisions come
// back from the storage layer and re-render the form as field errors.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var form forms.GroupForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if errs := form.Validate(); !errs.Valid() {
		return renderForm(c, "group_create", &form, errs)
	}

	group, err := s.groupService.CreateGroup(c.Context(), service.CreateGroupInput{
		CreatorID:   s.currentUserID(c),
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	})
	if err != nil {
		if models.HasCode(err, models.CodeConstraintViolation) {
			return renderForm(c, "group_create", &form, map[string]string{
				"slug": "A group with this title or slug already exists",
			})
		}
		return s.handleMutationError(c, err, "/")
	}

	return seeOther(c, "/group/"+group.Slug)
}

// DeleteGroup handles POST /group/:slug/delete. Only the creator may
// delete; anyone else is silently sent back to the group page.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	slug := c.Params("slug")
	group, err := s.groupService.GetGroupBySlug(c.Context(), slug)
	if err != nil {
		return s.handleViewError(c, err)
	}

	if err := s.groupService.DeleteGroup(c.Context(), s.currentUserID(c), group.ID); err != nil {
		return s.handleMutationError(c, err, "/group/"+slug)
	}
	return seeOther(c, "/")
}
