package server

import (
	"strings"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// postsPerPage is the fixed page size for every post listing.
const postsPerPage = 10

// Page is the pagination block every listing view-model carries.
type Page struct {
	Number     int   `json:"number"`
	TotalPages int   `json:"total_pages"`
	Count      int64 `json:"count"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// parsePage reads the 1-based page query parameter. Anything unparseable
// or below 1 falls back to page 1; pages past the end are clamped later,
// once the total is known.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

func totalPages(count int64) int {
	pages := int((count + postsPerPage - 1) / postsPerPage)
	if pages < 1 {
		pages = 1
	}
	return pages
}

func buildPage(number int, count int64) Page {
	pages := totalPages(count)
	return Page{
		Number:     number,
		TotalPages: pages,
		Count:      count,
		HasNext:    number < pages,
		HasPrev:    number > 1,
	}
}

// fetchPostPage runs a paginated listing, clamping an out-of-range page to
// the last valid one instead of returning an empty result or an error.
func fetchPostPage(page int, list func(limit, offset int) ([]*models.Post, int64, error)) ([]*models.Post, Page, error) {
	posts, total, err := list(postsPerPage, (page-1)*postsPerPage)
	if err != nil {
		return nil, Page{}, err
	}
	if last := totalPages(total); page > last {
		page = last
		posts, total, err = list(postsPerPage, (page-1)*postsPerPage)
		if err != nil {
			return nil, Page{}, err
		}
	}
	return posts, buildPage(page, total), nil
}

// currentUserID returns the authenticated actor's ID, or 0 for anonymous
// visitors.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// seeOther issues the 303 redirect used after mutations.
func seeOther(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

// safeNext validates a return-to path so logins cannot redirect off-site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// parseID extracts a route parameter by name as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// handleViewError renders the outcome of a failed read operation: unknown
// entities get the not-found view, everything else is an internal error.
func (s *Server) handleViewError(c *fiber.Ctx, err error) error {
	if models.HasCode(err, models.CodeNotFound) {
		return s.NotFound(c)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// handleMutationError renders the outcome of a failed mutation. Denied
// mutations silently redirect to the fallback view; unknown entities get
// the not-found view; constraint violations surface as validation errors.
func (s *Server) handleMutationError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case models.HasCode(err, models.CodeUnauthorized):
		return seeOther(c, fallback)
	case models.HasCode(err, models.CodeNotFound):
		return s.NotFound(c)
	case models.HasCode(err, models.CodeValidation), models.HasCode(err, models.CodeConstraintViolation):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
}

// renderForm re-renders a form view-model with field-level errors.
func renderForm(c *fiber.Ctx, view string, form any, errs map[string]string) error {
	status := fiber.StatusOK
	if len(errs) > 0 {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{
		"view":   view,
		"form":   form,
		"errors": errs,
	})
}
