package services

import (
	"errors"

	"molin/internal/db"
	"molin/internal/models"
	"molin/internal/utils"

	"gorm.io/gorm"
)

// UpdateCategoryInput 更新分类的可选字段，nil 表示不修改
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// ListCategories 查询全部分类，按创建时间倒序
func ListCategories() ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := db.DB.Order("created_at DESC").Find(&categories).Error
	return categories, err
}

// GetCategoryBySlug 按 slug 查询单个分类
func GetCategoryBySlug(slug string) (models.Category, error) {
	var category models.Category
	err := db.DB.Where("slug = ?", slug).First(&category).Error
	return category, err
}

// CreateCategory 创建分类，名称转换出的 slug 冲突时返回 ErrSlugTaken
func CreateCategory(name, description string) (models.Category, error) {
	newSlug := utils.GenerateSlug(name)

	taken, err := categorySlugExists(db.DB, newSlug, "")
	if err != nil {
		return models.Category{}, err
	}
	if taken {
		return models.Category{}, ErrSlugTaken
	}

	category := models.Category{
		Name:        name,
		Slug:        newSlug,
		Description: description,
	}
	if err := db.DB.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// UpdateCategory 更新分类，改名会重新生成 slug 并重新检查唯一性
func UpdateCategory(id string, in UpdateCategoryInput) (models.Category, error) {
	var category models.Category
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return err
		}

		if in.Name != nil {
			newSlug := utils.GenerateSlug(*in.Name)
			if newSlug != category.Slug {
				taken, err := categorySlugExists(tx, newSlug, category.ID)
				if err != nil {
					return err
				}
				if taken {
					return ErrSlugTaken
				}
			}
			category.Name = *in.Name
			category.Slug = newSlug
		}
		if in.Description != nil {
			category.Description = *in.Description
		}

		return tx.Save(&category).Error
	})
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory 删除分类及引用它的所有关联行，同一事务内完成
func DeleteCategory(id string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Select("id").Where("id = ?", id).First(&category).Error; err != nil {
			return err
		}

		if err := tx.Where("category_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Category{}).Error
	})
}

// categorySlugExists 检查 slug 是否已被其他分类占用
func categorySlugExists(tx *gorm.DB, slug, excludeID string) (bool, error) {
	var category models.Category
	query := tx.Select("id").Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
