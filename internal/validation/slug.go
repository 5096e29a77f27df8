// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var groupSlugRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// reservedGroupSlugs are names that collide with routes or static mounts.
var reservedGroupSlugs = map[string]struct{}{
	"admin":   {},
	"api":     {},
	"auth":    {},
	"create":  {},
	"follow":  {},
	"group":   {},
	"groups":  {},
	"health":  {},
	"liked":   {},
	"login":   {},
	"media":   {},
	"metrics": {},
	"posts":   {},
	"profile": {},
	"signup":  {},
	"static":  {},
}

// ValidateGroupSlug validates group slug format and reserved names.
func ValidateGroupSlug(slug string) error {
	if !groupSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 1-50 characters and contain only letters, digits, hyphens, and underscores")
	}

	if _, exists := reservedGroupSlugs[strings.ToLower(slug)]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
