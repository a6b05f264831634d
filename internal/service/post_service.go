package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/repository"
	"github.com/example/blog-platform/internal/slug"
)

// SearchIndex is the slice of the elasticsearch client the post service
// needs; writes to it are best-effort and never fail a request.
type SearchIndex interface {
	IndexPost(ctx context.Context, id uint, doc map[string]interface{}) error
	DeletePost(ctx context.Context, id uint) error
	SearchPosts(ctx context.Context, query string) ([]map[string]interface{}, error)
}

type PostService struct {
	db       *db.Database
	search   SearchIndex
	posts    *repository.PostRepository
	tags     *repository.TagRepository
	comments *repository.CommentRepository
}

func NewPostService(database *db.Database, search SearchIndex) *PostService {
	return &PostService{
		db:       database,
		search:   search,
		posts:    repository.NewPostRepository(database.Gorm),
		tags:     repository.NewTagRepository(database.Gorm),
		comments: repository.NewCommentRepository(database.Gorm),
	}
}

type CreatePostInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
}

// UpdatePostInput carries partial updates; nil fields are left untouched.
// A non-nil Tags replaces the post's full tag set.
type UpdatePostInput struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Excerpt    *string   `json:"excerpt"`
	CoverImage *string   `json:"cover_image"`
	Published  *bool     `json:"published"`
	Tags       *[]string `json:"tags"`
}

type PostPage struct {
	Posts       []repository.PostRow `json:"posts"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
}

type PostDetail struct {
	repository.PostRow
	Tags     []models.Tag            `json:"tags"`
	Comments []repository.CommentRow `json:"comments"`
}

func (s *PostService) CreatePost(ctx context.Context, caller auth.Identity, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		Slug:       slug.ForTitle(in.Title),
		CoverImage: in.CoverImage,
		AuthorID:   caller.ID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.Create(ctx, tx, post); err != nil {
			return err
		}
		return s.resolveTags(ctx, tx, in.Tags, post.ID)
	})
	if err != nil {
		return nil, err
	}
	s.indexPost(ctx, post)
	return post, nil
}

// resolveTags finds or creates each named tag and links it to the post.
// Names are trimmed and deduplicated first; lookup is exact on the trimmed
// name, the derived slug is always lowercase. Runs inside the caller's
// transaction so a failure rolls back the whole tag set.
func (s *PostService) resolveTags(ctx context.Context, tx *gorm.DB, names []string, postID uint) error {
	seen := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.tags.FindByName(ctx, tx, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = &models.Tag{Name: name, Slug: slug.ForTag(name)}
			err = s.tags.Create(ctx, tx, tag)
		}
		if err != nil {
			return err
		}
		if err := s.tags.Link(ctx, tx, postID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostService) ListPosts(ctx context.Context, page, limit int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.posts.ListPublished(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	return &PostPage{
		Posts:       rows,
		TotalPages:  int((count + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*PostDetail, error) {
	row, err := s.posts.GetRowByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return s.detail(ctx, row)
}

func (s *PostService) GetPostBySlug(ctx context.Context, postSlug string) (*PostDetail, error) {
	row, err := s.posts.GetRowBySlug(ctx, postSlug)
	if err != nil {
		return nil, asNotFound(err)
	}
	return s.detail(ctx, row)
}

func (s *PostService) detail(ctx context.Context, row *repository.PostRow) (*PostDetail, error) {
	tags, err := s.tags.TagsForPost(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListForPost(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{PostRow: *row, Tags: tags, Comments: comments}, nil
}

func (s *PostService) UpdatePost(ctx context.Context, caller auth.Identity, id uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !auth.CanMutate(post.AuthorID, caller) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Excerpt != nil {
		updates["excerpt"] = *in.Excerpt
	}
	if in.CoverImage != nil {
		updates["cover_image"] = *in.CoverImage
	}
	if in.Published != nil {
		updates["published"] = *in.Published
		// published_at records the first publish only; later edits while
		// published never restamp it.
		if *in.Published && !post.Published {
			updates["published_at"] = time.Now()
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.posts.Update(ctx, tx, id, updates); err != nil {
				return err
			}
		}
		if in.Tags != nil {
			if err := s.tags.UnlinkAll(ctx, tx, id); err != nil {
				return err
			}
			return s.resolveTags(ctx, tx, *in.Tags, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	s.indexPost(ctx, updated)
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, caller auth.Identity, id uint) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if !auth.CanMutate(post.AuthorID, caller) {
		return ErrForbidden
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	if s.search != nil {
		_ = s.search.DeletePost(ctx, id)
	}
	return nil
}

func (s *PostService) SearchPosts(ctx context.Context, query string) ([]map[string]interface{}, error) {
	if s.search == nil {
		return []map[string]interface{}{}, nil
	}
	return s.search.SearchPosts(ctx, query)
}

func (s *PostService) indexPost(ctx context.Context, post *models.Post) {
	if s.search == nil {
		return
	}
	tags, err := s.tags.TagsForPost(ctx, post.ID)
	if err != nil {
		tags = nil
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	_ = s.search.IndexPost(ctx, post.ID, map[string]interface{}{
		"id":        post.ID,
		"title":     post.Title,
		"content":   post.Content,
		"excerpt":   post.Excerpt,
		"slug":      post.Slug,
		"tags":      names,
		"published": post.Published,
	})
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
