package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/blog-platform/internal/models"
)

type TagRepository struct{ db *gorm.DB }

func NewTagRepository(db *gorm.DB) *TagRepository { return &TagRepository{db: db} }

func (r *TagRepository) FindByName(ctx context.Context, tx *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := tx.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) Create(ctx context.Context, tx *gorm.DB, tag *models.Tag) error {
	return tx.WithContext(ctx).Create(tag).Error
}

func (r *TagRepository) Link(ctx context.Context, tx *gorm.DB, postID, tagID uint) error {
	return tx.WithContext(ctx).Create(&models.PostTag{PostID: postID, TagID: tagID}).Error
}

// UnlinkAll removes every tag link for a post; tag resolution re-links the
// full replacement set afterwards.
func (r *TagRepository) UnlinkAll(ctx context.Context, tx *gorm.DB, postID uint) error {
	return tx.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostTag{}).Error
}

func (r *TagRepository) ListAll(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) TagsForPost(ctx context.Context, postID uint) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT t.id, t.name, t.slug, t.description FROM tags t
			JOIN post_tags pt ON t.id = pt.tag_id WHERE pt.post_id = ?`, postID).
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
