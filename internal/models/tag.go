package models

// Tag is created lazily the first time any post references its name.
type Tag struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

// PostTag is the posts<->tags join row. It has no identity of its own;
// deleting either side cascades.
type PostTag struct {
	PostID uint `gorm:"primaryKey" json:"post_id"`
	TagID  uint `gorm:"primaryKey" json:"tag_id"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Tag    Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}
