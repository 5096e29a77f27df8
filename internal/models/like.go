package models

import "time"

// LikeValue is the toggled state of a user's reaction to a post.
type LikeValue string

const (
	// LikeValueLike marks an active like.
	LikeValueLike LikeValue = "Like"
	// LikeValueUnlike marks a withdrawn like. The row is kept so the pair
	// stays unique and the toggle flips in place.
	LikeValueUnlike LikeValue = "Unlike"
)

// Like is the single authoritative record of a user's reaction to a post.
// A post's like count and liked-by set are derived from these rows at query
// time; there is no stored counter to drift out of sync.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	Value     LikeValue `gorm:"type:varchar(10);not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}
