package service

import (
	"context"

	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/repository"
)

type TagService struct {
	tags *repository.TagRepository
}

func NewTagService(database *db.Database) *TagService {
	return &TagService{tags: repository.NewTagRepository(database.Gorm)}
}

func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.ListAll(ctx)
}
