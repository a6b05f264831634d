package models

import "time"

// Post slug uniqueness is enforced by the schema; published implies
// PublishedAt is set (stamped on the first false->true transition).
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"type:text" json:"excerpt,omitempty"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CoverImage  string     `gorm:"type:text" json:"cover_image,omitempty"`
	Published   bool       `gorm:"default:false" json:"published"`
	AuthorID    uint       `gorm:"not null" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
