package service

import (
	"context"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/repository"
)

type CommentService struct {
	comments *repository.CommentRepository
}

func NewCommentService(database *db.Database) *CommentService {
	return &CommentService{comments: repository.NewCommentRepository(database.Gorm)}
}

type CreateCommentInput struct {
	Content  string `json:"content"`
	PostID   uint   `json:"postId"`
	ParentID *uint  `json:"parentId"`
}

func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]repository.CommentRow, error) {
	return s.comments.ListForPost(ctx, postID)
}

func (s *CommentService) CreateComment(ctx context.Context, caller auth.Identity, in CreateCommentInput) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: caller.ID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
