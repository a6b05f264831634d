package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
)

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{ID: u.ID, Role: u.Role}
}

func linkedTagNames(t *testing.T, database *db.Database, postID uint) []string {
	t.Helper()
	names := []string{}
	err := database.Gorm.
		Raw(`SELECT t.name FROM tags t JOIN post_tags pt ON t.id = pt.tag_id
			WHERE pt.post_id = ? ORDER BY t.name`, postID).
		Scan(&names).Error
	require.NoError(t, err)
	return names
}

func TestCreatePostDerivesSlugAndResolvesTags(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title:   "Hello, World!",
		Content: "first post",
		Tags:    []string{"Go", "Web Dev", "Go", " Web Dev "},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.False(t, post.Published)

	// duplicate names in one request collapse to a single link each
	assert.Equal(t, []string{"Go", "Web Dev"}, linkedTagNames(t, database, post.ID))

	var tag models.Tag
	require.NoError(t, database.Gorm.Where("name = ?", "Web Dev").First(&tag).Error)
	assert.Equal(t, "web-dev", tag.Slug)
}

func TestResolveTagsTrimsButKeepsCase(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	// trimmed "tech " matches an existing "tech" tag exactly
	_, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "First", Content: "body", Tags: []string{"tech"},
	})
	require.NoError(t, err)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Second", Content: "body", Tags: []string{"tech "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tech"}, linkedTagNames(t, database, post.ID))

	var tags int64
	require.NoError(t, database.Gorm.Model(&models.Tag{}).Count(&tags).Error)
	assert.EqualValues(t, 1, tags)

	// name lookup is case-sensitive, but "Tech" derives the same slug as
	// "tech"; the slug uniqueness constraint surfaces that as an error and
	// rolls the whole post back
	_, err = svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Third", Content: "body", Tags: []string{"Tech"},
	})
	assert.Error(t, err)

	var posts int64
	require.NoError(t, database.Gorm.Model(&models.Post{}).Where("title = ?", "Third").Count(&posts).Error)
	assert.Zero(t, posts, "failed tag resolution must roll back the post insert")
}

func TestCreatePostDuplicateTitleFails(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	_, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Same Title", Content: "one",
	})
	require.NoError(t, err)

	// slug uniqueness surfaces the second insert as an error
	_, err = svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Same Title", Content: "two",
	})
	assert.Error(t, err)
}

func TestUpdatePostReplacesTagSet(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Tagged", Content: "body", Tags: []string{"alpha", "beta"},
	})
	require.NoError(t, err)

	newTags := []string{"beta", "gamma"}
	_, err = svc.UpdatePost(context.Background(), identityOf(author), post.ID, UpdatePostInput{Tags: &newTags})
	require.NoError(t, err)

	assert.Equal(t, []string{"beta", "gamma"}, linkedTagNames(t, database, post.ID))

	// the alpha tag itself survives, only its link is gone
	var count int64
	require.NoError(t, database.Gorm.Model(&models.Tag{}).Where("name = ?", "alpha").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdatePostStampsPublishedAtOnce(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Draft", Content: "body",
	})
	require.NoError(t, err)
	require.Nil(t, post.PublishedAt)

	published := true
	updated, err := svc.UpdatePost(context.Background(), identityOf(author), post.ID, UpdatePostInput{Published: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	first := *updated.PublishedAt

	time.Sleep(20 * time.Millisecond)

	title := "Draft, renamed"
	updated, err = svc.UpdatePost(context.Background(), identityOf(author), post.ID, UpdatePostInput{Title: &title, Published: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(first), "published_at must keep the first publish time")
}

func TestUpdatePostAuthorization(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	stranger := seedUser(t, database, "bob", "bob@example.com", models.RoleUser)
	admin := seedUser(t, database, "root", "root@example.com", models.RoleAdmin)
	svc := NewPostService(database, nil)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Mine", Content: "body",
	})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.UpdatePost(context.Background(), identityOf(stranger), post.ID, UpdatePostInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	var unchanged models.Post
	require.NoError(t, database.Gorm.First(&unchanged, post.ID).Error)
	assert.Equal(t, "Mine", unchanged.Title)

	adminTitle := "Moderated"
	updated, err := svc.UpdatePost(context.Background(), identityOf(admin), post.ID, UpdatePostInput{Title: &adminTitle})
	require.NoError(t, err)
	assert.Equal(t, "Moderated", updated.Title)
}

func TestDeletePostAuthorizationAndCascade(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	stranger := seedUser(t, database, "bob", "bob@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Doomed", Content: "body", Tags: []string{"tmp"},
	})
	require.NoError(t, err)
	require.NoError(t, database.Gorm.Create(&models.Comment{
		Content: "nice", AuthorID: stranger.ID, PostID: post.ID,
	}).Error)

	err = svc.DeletePost(context.Background(), identityOf(stranger), post.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeletePost(context.Background(), identityOf(author), post.ID))

	var comments, links int64
	require.NoError(t, database.Gorm.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	require.NoError(t, database.Gorm.Model(&models.PostTag{}).Where("post_id = ?", post.ID).Count(&links).Error)
	assert.Zero(t, comments)
	assert.Zero(t, links)

	err = svc.DeletePost(context.Background(), identityOf(author), post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascadesToPostsAndComments(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Orphaned", Content: "body", Tags: []string{"legacy"},
	})
	require.NoError(t, err)
	require.NoError(t, database.Gorm.Create(&models.Comment{
		Content: "self-reply", AuthorID: author.ID, PostID: post.ID,
	}).Error)

	require.NoError(t, database.Gorm.Delete(&models.User{}, author.ID).Error)

	var posts, comments, links int64
	require.NoError(t, database.Gorm.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, database.Gorm.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, database.Gorm.Model(&models.PostTag{}).Count(&links).Error)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
	assert.Zero(t, links)
}

func TestListPostsPagination(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, database.Gorm.Create(&models.Post{
			Title:       fmt.Sprintf("Post %d", i),
			Content:     "body",
			Slug:        fmt.Sprintf("post-%d", i),
			Published:   true,
			AuthorID:    author.ID,
			PublishedAt: &at,
		}).Error)
	}
	// drafts never show up in the listing
	require.NoError(t, database.Gorm.Create(&models.Post{
		Title: "Draft", Content: "body", Slug: "draft", AuthorID: author.ID,
	}).Error)

	page, err := svc.ListPosts(context.Background(), 2, 6)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 4)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)

	first, err := svc.ListPosts(context.Background(), 1, 6)
	require.NoError(t, err)
	require.Len(t, first.Posts, 6)
	assert.Equal(t, "Post 9", first.Posts[0].Title, "newest published first")
	assert.Equal(t, "alice", first.Posts[0].AuthorName)
}

func TestGetPostDetailAndSlugVisibility(t *testing.T) {
	database := setupTestDB(t)
	author := seedUser(t, database, "alice", "alice@example.com", models.RoleUser)
	commenter := seedUser(t, database, "bob", "bob@example.com", models.RoleUser)
	svc := NewPostService(database, nil)

	post, err := svc.CreatePost(context.Background(), identityOf(author), CreatePostInput{
		Title: "Visible", Content: "body", Tags: []string{"go"},
	})
	require.NoError(t, err)

	old := time.Now().Add(-time.Minute)
	require.NoError(t, database.Gorm.Create(&models.Comment{
		Content: "first", AuthorID: commenter.ID, PostID: post.ID, CreatedAt: old,
	}).Error)
	require.NoError(t, database.Gorm.Create(&models.Comment{
		Content: "second", AuthorID: author.ID, PostID: post.ID,
	}).Error)

	detail, err := svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.AuthorName)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "go", detail.Tags[0].Name)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "second", detail.Comments[0].Content, "comments newest first")
	assert.Equal(t, "bob", detail.Comments[1].AuthorName)

	// drafts are invisible by slug until published
	_, err = svc.GetPostBySlug(context.Background(), post.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	published := true
	_, err = svc.UpdatePost(context.Background(), identityOf(author), post.ID, UpdatePostInput{Published: &published})
	require.NoError(t, err)

	bySlug, err := svc.GetPostBySlug(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)

	_, err = svc.GetPost(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}
