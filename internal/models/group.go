package models

import "time"

// Group represents a named topic that posts may belong to.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null;uniqueIndex" json:"title"`
	Slug        string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	CreatorID   uint   `gorm:"not null;index" json:"creator_id"`
	Creator     User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	// PostsCount is not persisted; computed at query time
	PostsCount int       `gorm:"->" json:"posts_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}
