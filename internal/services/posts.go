package services

import (
	"errors"
	"strings"

	"molin/internal/db"
	"molin/internal/models"
	"molin/internal/utils"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// PostFilter 文章列表的可选过滤条件
type PostFilter struct {
	Published   *bool    // nil = 不过滤
	Search      string   // 标题或正文的不区分大小写子串匹配
	CategoryIDs []string // 命中任意一个分类即可（OR），与其他条件取交集
}

// UpdatePostInput 更新文章的可选字段，nil 表示不修改
type UpdatePostInput struct {
	Title       *string
	Content     *string
	Published   *bool
	CategoryIDs *[]string // 非 nil 时全量替换关联，空数组表示清空
}

// ListPosts 按过滤条件查询文章，按创建时间倒序。
// 分类过滤采用两段式：先查关联表解析出文章 ID 集合，
// 再与其余条件取交集，避免 JOIN 在多分类命中时产生重复行。
func ListPosts(f PostFilter) ([]models.Post, error) {
	tx := db.DB.Model(&models.Post{})

	if f.Published != nil {
		tx = tx.Where("published = ?", *f.Published)
	}

	if f.Search != "" {
		probe := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", probe, probe)
	}

	if len(f.CategoryIDs) > 0 {
		var postIDs []string
		err := db.DB.Model(&models.PostCategory{}).
			Distinct("post_id").
			Where("category_id IN ?", lo.Uniq(f.CategoryIDs)).
			Pluck("post_id", &postIDs).Error
		if err != nil {
			return nil, err
		}
		// 所选分类下没有任何文章，直接返回空列表
		if len(postIDs) == 0 {
			return []models.Post{}, nil
		}
		tx = tx.Where("id IN ?", postIDs)
	}

	posts := make([]models.Post, 0)
	err := tx.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// GetPostBySlug 按 slug 查询单篇文章，附带其分类列表
func GetPostBySlug(slug string) (models.Post, error) {
	var post models.Post
	if err := db.DB.Where("slug = ?", slug).First(&post).Error; err != nil {
		return post, err
	}

	categories, err := loadPostCategories(post.ID)
	if err != nil {
		return post, err
	}
	post.Categories = categories
	return post, nil
}

// GetPostByID 按 ID 查询单篇文章，附带其分类列表
func GetPostByID(id string) (models.Post, error) {
	var post models.Post
	if err := db.DB.Where("id = ?", id).First(&post).Error; err != nil {
		return post, err
	}

	categories, err := loadPostCategories(post.ID)
	if err != nil {
		return post, err
	}
	post.Categories = categories
	return post, nil
}

// CreatePost 创建文章，默认未发布、不挂分类。
// slug 由标题生成，冲突时返回 ErrSlugTaken。
func CreatePost(title, content string) (models.Post, error) {
	newSlug := utils.GenerateSlug(title)

	taken, err := slugExists(db.DB, newSlug, "")
	if err != nil {
		return models.Post{}, err
	}
	if taken {
		return models.Post{}, ErrSlugTaken
	}

	post := models.Post{
		Title:     title,
		Slug:      newSlug,
		Content:   content,
		Published: false,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// UpdatePost 更新文章。标题变化会重新生成 slug 并重新检查唯一性；
// CategoryIDs 非 nil 时在同一事务里全量替换分类关联。
func UpdatePost(id string, in UpdatePostInput) (models.Post, error) {
	var post models.Post
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&post).Error; err != nil {
			return err
		}

		if in.Title != nil {
			newSlug := utils.GenerateSlug(*in.Title)
			if newSlug != post.Slug {
				taken, err := slugExists(tx, newSlug, post.ID)
				if err != nil {
					return err
				}
				if taken {
					return ErrSlugTaken
				}
			}
			post.Title = *in.Title
			post.Slug = newSlug
		}
		if in.Content != nil {
			post.Content = *in.Content
		}
		if in.Published != nil {
			post.Published = *in.Published
		}

		if err := tx.Save(&post).Error; err != nil {
			return err
		}

		if in.CategoryIDs != nil {
			if err := replacePostCategories(tx, post.ID, *in.CategoryIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Post{}, err
	}

	categories, err := loadPostCategories(post.ID)
	if err != nil {
		return post, err
	}
	post.Categories = categories
	return post, nil
}

// DeletePost 删除文章及其分类关联，同一事务内先删关联再删文章
func DeletePost(id string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").Where("id = ?", id).First(&post).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}

// replacePostCategories 让关联表精确等于目标分类集合。
// 全量替换：先删后插，原子性由外层事务保证。
func replacePostCategories(tx *gorm.DB, postID string, categoryIDs []string) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostCategory{}).Error; err != nil {
		return err
	}

	ids := lo.Uniq(categoryIDs)
	if len(ids) == 0 {
		return nil
	}

	// 关联要求两端都存在，缺失的分类 ID 直接拒绝
	var count int64
	if err := tx.Model(&models.Category{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrUnknownCategory
	}

	rows := lo.Map(ids, func(categoryID string, _ int) models.PostCategory {
		return models.PostCategory{PostID: postID, CategoryID: categoryID}
	})
	return tx.Create(&rows).Error
}

// loadPostCategories 查询文章关联的分类
func loadPostCategories(postID string) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := db.DB.Model(&models.Category{}).
		Joins("JOIN post_categories ON post_categories.category_id = categories.id").
		Where("post_categories.post_id = ?", postID).
		Find(&categories).Error
	return categories, err
}

// slugExists 检查 slug 是否已被其他文章占用
func slugExists(tx *gorm.DB, slug, excludeID string) (bool, error) {
	var post models.Post
	query := tx.Select("id").Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
