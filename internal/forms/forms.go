// Package forms validates user-submitted form input and reports
// field-level errors suitable for re-rendering the form.
package forms

import (
	"strings"

	"inkwell/internal/validation"
)

// FieldErrors maps a form field name to its validation message.
// An empty map means the form is valid.
type FieldErrors map[string]string

// Valid reports whether the form passed validation.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// PostForm carries the submitted fields for creating or editing a post.
type PostForm struct {
	Title    string `json:"title" form:"title"`
	Text     string `json:"text" form:"text"`
	GroupID  *uint  `json:"group_id" form:"group_id"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// Validate checks the post form. Whitespace-only text counts as empty.
func (f *PostForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

// CommentForm carries the submitted fields for adding a comment.
type CommentForm struct {
	Text string `json:"text" form:"text"`
}

// Validate checks the comment form. Whitespace-only text counts as empty.
func (f *CommentForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

// GroupForm carries the submitted fields for creating a group.
type GroupForm struct {
	Title       string `json:"title" form:"title"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
}

// Validate checks the group form. Uniqueness of title and slug is the
// storage layer's job; conflicts surface as field errors there.
func (f *GroupForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	slug := strings.TrimSpace(f.Slug)
	if slug == "" {
		errs["slug"] = "Slug is required"
	} else if err := validation.ValidateGroupSlug(slug); err != nil {
		errs["slug"] = err.Error()
	}
	return errs
}

// SignupForm carries the submitted fields for registering a user.
type SignupForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate checks the signup form.
func (f *SignupForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if err := validation.ValidateUsername(strings.TrimSpace(f.Username)); err != nil {
		errs["username"] = err.Error()
	}
	if err := validation.ValidateEmail(strings.TrimSpace(f.Email)); err != nil {
		errs["email"] = err.Error()
	}
	if err := validation.ValidatePassword(f.Password); err != nil {
		errs["password"] = err.Error()
	}
	return errs
}
