package seed

import (
	"errors"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInGroup is a permanent system group.
type BuiltInGroup struct {
	Title       string
	Slug        string
	Description string
}

// BuiltInGroups defines the permanent system groups every fresh install gets.
var BuiltInGroups = []BuiltInGroup{
	{Title: "The Commons", Slug: "commons", Description: "General discussion for everyone."},
	{Title: "The Notebook", Slug: "writing", Description: "Essays, fiction, and works in progress."},
	{Title: "The Darkroom", Slug: "photography", Description: "Photo posts and critique."},
	{Title: "The Stacks", Slug: "books", Description: "Books, reading lists, and reviews."},
	{Title: "The Workshop", Slug: "programming", Description: "Software and side projects."},
	{Title: "The Pantry", Slug: "food", Description: "Cooking, recipes, and restaurants."},
	{Title: "The Trailhead", Slug: "travel", Description: "Trips, places, and travel notes."},
}

// systemUsername owns the built-in groups. The account has a random
// password and is not meant for interactive login.
const systemUsername = "inkwell"

// EnsureBuiltInGroups upserts the permanent groups, creating the system
// owner account on first run. Safe to call on every startup.
func EnsureBuiltInGroups(db *gorm.DB) error {
	owner, err := ensureSystemUser(db)
	if err != nil {
		return err
	}

	for _, item := range BuiltInGroups {
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
			CreatorID:   owner.ID,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureSystemUser(db *gorm.DB) (*models.User, error) {
	var owner models.User
	err := db.Where("username = ?", systemUsername).First(&owner).Error
	if err == nil {
		return &owner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(randomPassword()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	owner = models.User{
		Username: systemUsername,
		Email:    "system@inkwell.local",
		Password: string(hash),
	}
	if err := db.Create(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func randomPassword() string {
	return gofakeit.Password(true, true, true, true, false, 32)
}
