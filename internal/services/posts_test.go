package services

import (
	"errors"
	"testing"

	"molin/internal/db"
	"molin/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 用内存 SQLite 替换全局连接，每个测试一个独立库
func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// :memory: 下多个连接会各自拿到独立的库，必须限制为单连接
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&models.Category{}, &models.Post{}, &models.PostCategory{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db.DB = gdb
}

func mustCreateCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category, err := CreateCategory(name, "")
	if err != nil {
		t.Fatalf("CreateCategory(%q) failed: %v", name, err)
	}
	return category
}

func mustCreatePost(t *testing.T, title, content string) models.Post {
	t.Helper()
	post, err := CreatePost(title, content)
	if err != nil {
		t.Fatalf("CreatePost(%q) failed: %v", title, err)
	}
	return post
}

func mustAttachCategories(t *testing.T, postID string, categoryIDs []string) {
	t.Helper()
	_, err := UpdatePost(postID, UpdatePostInput{CategoryIDs: &categoryIDs})
	if err != nil {
		t.Fatalf("UpdatePost attach categories failed: %v", err)
	}
}

func TestCreatePost(t *testing.T) {
	setupTestDB(t)

	post := mustCreatePost(t, "Getting Started", "some content")

	if post.ID == "" {
		t.Error("Expected generated ID")
	}
	if post.Slug != "getting-started" {
		t.Errorf("Expected slug getting-started, got %q", post.Slug)
	}
	if post.Published {
		t.Error("New post should not be published")
	}
}

func TestCreatePostSlugConflict(t *testing.T) {
	setupTestDB(t)

	mustCreatePost(t, "Getting Started", "one")

	// 不同标题但 slug 相同，应该冲突而不是悄悄重复
	_, err := CreatePost("Getting Started!", "two")
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("Expected ErrSlugTaken, got %v", err)
	}
}

func TestListPostsCategoryUnion(t *testing.T) {
	setupTestDB(t)

	catA := mustCreateCategory(t, "Alpha")
	catB := mustCreateCategory(t, "Beta")

	p1 := mustCreatePost(t, "Only A", "...")
	p2 := mustCreatePost(t, "Only B", "...")
	p3 := mustCreatePost(t, "Both", "...")
	mustCreatePost(t, "Neither", "...")

	mustAttachCategories(t, p1.ID, []string{catA.ID})
	mustAttachCategories(t, p2.ID, []string{catB.ID})
	mustAttachCategories(t, p3.ID, []string{catA.ID, catB.ID})

	posts, err := ListPosts(PostFilter{CategoryIDs: []string{catA.ID, catB.ID}})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	if len(posts) != 3 {
		t.Fatalf("Expected 3 posts (union without duplicates), got %d", len(posts))
	}
	seen := map[string]bool{}
	for _, p := range posts {
		if seen[p.ID] {
			t.Errorf("Post %q returned twice", p.Title)
		}
		seen[p.ID] = true
		if p.Title == "Neither" {
			t.Error("Post in neither category should not be returned")
		}
	}
}

func TestListPostsEmptyCategoryMatch(t *testing.T) {
	setupTestDB(t)

	category := mustCreateCategory(t, "Empty")
	mustCreatePost(t, "Unrelated", "...")

	posts, err := ListPosts(PostFilter{CategoryIDs: []string{category.ID}})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("Expected empty result, got %d posts", len(posts))
	}
}

func TestListPostsSearch(t *testing.T) {
	setupTestDB(t)

	mustCreatePost(t, "Getting Started with Next.js 15", "framework guide")
	mustCreatePost(t, "Cooking at Home", "what happens NEXT will surprise you")
	mustCreatePost(t, "Unrelated", "nothing to see")

	posts, err := ListPosts(PostFilter{Search: "next"})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("Expected 2 matches for 'next' (title or content, case-insensitive), got %d", len(posts))
	}
	for _, p := range posts {
		if p.Title == "Unrelated" {
			t.Error("Non-matching post returned")
		}
	}
}

func TestListPostsPublishedFilter(t *testing.T) {
	setupTestDB(t)

	draft := mustCreatePost(t, "Draft", "...")
	published := mustCreatePost(t, "Published", "...")
	yes := true
	if _, err := UpdatePost(published.ID, UpdatePostInput{Published: &yes}); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	posts, err := ListPosts(PostFilter{Published: &yes})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != published.ID {
		t.Errorf("Expected only the published post, got %d posts", len(posts))
	}

	no := false
	posts, err = ListPosts(PostFilter{Published: &no})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != draft.ID {
		t.Errorf("Expected only the draft post, got %d posts", len(posts))
	}
}

func TestUpdatePostReplaceWithEmptyClearsCategories(t *testing.T) {
	setupTestDB(t)

	category := mustCreateCategory(t, "Tech")
	post := mustCreatePost(t, "A Post", "...")
	mustAttachCategories(t, post.ID, []string{category.ID})

	// 空数组是清空，不是无操作
	mustAttachCategories(t, post.ID, []string{})

	got, err := GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if len(got.Categories) != 0 {
		t.Errorf("Expected no categories after empty replace, got %d", len(got.Categories))
	}
}

func TestUpdatePostDeduplicatesCategories(t *testing.T) {
	setupTestDB(t)

	category := mustCreateCategory(t, "Tech")
	post := mustCreatePost(t, "A Post", "...")
	mustAttachCategories(t, post.ID, []string{category.ID, category.ID})

	var count int64
	db.DB.Model(&models.PostCategory{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 association row, got %d", count)
	}
}

func TestUpdatePostUnknownCategory(t *testing.T) {
	setupTestDB(t)

	post := mustCreatePost(t, "A Post", "...")
	ids := []string{"00000000-0000-0000-0000-000000000000"}
	_, err := UpdatePost(post.ID, UpdatePostInput{CategoryIDs: &ids})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}

func TestUpdatePostRenameRegeneratesSlug(t *testing.T) {
	setupTestDB(t)

	post := mustCreatePost(t, "Old Title", "...")
	newTitle := "New Title"
	updated, err := UpdatePost(post.ID, UpdatePostInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Slug != "new-title" {
		t.Errorf("Expected slug new-title, got %q", updated.Slug)
	}

	// 旧 slug 不再可用
	if _, err := GetPostBySlug("old-title"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected old slug to be gone, got %v", err)
	}
}

func TestUpdatePostRenameSlugConflict(t *testing.T) {
	setupTestDB(t)

	mustCreatePost(t, "Taken Title", "...")
	post := mustCreatePost(t, "Other Title", "...")

	conflicting := "Taken Title"
	_, err := UpdatePost(post.ID, UpdatePostInput{Title: &conflicting})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("Expected ErrSlugTaken, got %v", err)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	setupTestDB(t)

	title := "Whatever"
	_, err := UpdatePost("00000000-0000-0000-0000-000000000000", UpdatePostInput{Title: &title})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected record not found, got %v", err)
	}
}

func TestDeletePostRemovesAssociations(t *testing.T) {
	setupTestDB(t)

	category := mustCreateCategory(t, "Tech")
	post := mustCreatePost(t, "A Post", "...")
	mustAttachCategories(t, post.ID, []string{category.ID})

	if err := DeletePost(post.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	var count int64
	db.DB.Model(&models.PostCategory{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected association rows to be deleted, got %d", count)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	setupTestDB(t)

	err := DeletePost("00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected record not found, got %v", err)
	}
}

// 完整场景：建分类、建文章、挂分类、按 slug 查详情
func TestPostCategoryScenario(t *testing.T) {
	setupTestDB(t)

	category, err := CreateCategory("Technology", "Tech posts")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if category.Slug != "technology" {
		t.Fatalf("Expected slug technology, got %q", category.Slug)
	}

	post := mustCreatePost(t, "Getting Started", "...")
	if post.Slug != "getting-started" {
		t.Fatalf("Expected slug getting-started, got %q", post.Slug)
	}

	mustAttachCategories(t, post.ID, []string{category.ID})

	got, err := GetPostBySlug("getting-started")
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if len(got.Categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(got.Categories))
	}
	if got.Categories[0].Name != "Technology" || got.Categories[0].Slug != "technology" {
		t.Errorf("Unexpected category %+v", got.Categories[0])
	}
}
