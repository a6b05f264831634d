package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/example/blog-platform/internal/models"
)

// PostRow is a post joined with its author's username, the shape every
// read endpoint returns.
type PostRow struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Slug        string     `json:"slug"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Published   bool       `json:"published"`
	AuthorID    uint       `json:"author_id"`
	AuthorName  string     `json:"author_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

const postRowSelect = `SELECT p.id, p.title, p.content, p.excerpt, p.slug, p.cover_image,
	p.published, p.author_id, u.username AS author_name,
	p.created_at, p.updated_at, p.published_at
	FROM posts p JOIN users u ON p.author_id = u.id`

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

func (r *PostRepository) Create(ctx context.Context, tx *gorm.DB, p *models.Post) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) GetRowByID(ctx context.Context, id uint) (*PostRow, error) {
	var row PostRow
	err := r.db.WithContext(ctx).
		Raw(postRowSelect+" WHERE p.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// GetRowBySlug resolves a published post only; drafts are invisible by slug.
func (r *PostRepository) GetRowBySlug(ctx context.Context, slug string) (*PostRow, error) {
	var row PostRow
	err := r.db.WithContext(ctx).
		Raw(postRowSelect+" WHERE p.slug = ? AND p.published = ?", slug, true).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *PostRepository) ListPublished(ctx context.Context, limit, offset int) ([]PostRow, error) {
	rows := []PostRow{}
	err := r.db.WithContext(ctx).
		Raw(postRowSelect+" WHERE p.published = ? ORDER BY p.published_at DESC LIMIT ? OFFSET ?",
			true, limit, offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostRepository) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("published = ?", true).Count(&n).Error
	return n, err
}

func (r *PostRepository) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
