package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/example/blog-platform/internal/models"
)

type CommentRow struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uint      `json:"author_id"`
	PostID     uint      `json:"post_id"`
	ParentID   *uint     `json:"parent_id,omitempty"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CommentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) *CommentRepository { return &CommentRepository{db: db} }

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// ListForPost returns a post's comments newest first, each joined with its
// author's username.
func (r *CommentRepository) ListForPost(ctx context.Context, postID uint) ([]CommentRow, error) {
	rows := []CommentRow{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT c.id, c.content, c.author_id, c.post_id, c.parent_id,
			u.username AS author_name, c.created_at, c.updated_at
			FROM comments c JOIN users u ON c.author_id = u.id
			WHERE c.post_id = ? ORDER BY c.created_at DESC`, postID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
