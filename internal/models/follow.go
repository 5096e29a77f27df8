package models

import "time"

// Follow represents a directed subscription from one user to an author's posts.
// The (user, author) pair is unique and a user can never follow themselves;
// both rules are database constraints so that concurrent violations fail
// atomically instead of leaving duplicate or self-referential rows.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follow_user_author;check:chk_no_self_follow,user_id <> author_id" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"author_id"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
