package handlers

import (
	"errors"
	"net/http"

	"molin/internal/response"
	"molin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// GetAll 全部分类，按创建时间倒序
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := services.ListCategories()
	if err != nil {
		failInternal(c, err)
		return
	}

	respond(c, http.StatusOK, categories, "Categories retrieved successfully")
}

// GetBySlug 按 slug 查询单个分类
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := services.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, response.CodeNotFound, "Category not found")
			return
		}
		failInternal(c, err)
		return
	}

	respond(c, http.StatusOK, category, "Category retrieved successfully")
}

// Create 创建分类，slug 冲突时返回 conflict
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	category, err := services.CreateCategory(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			fail(c, response.CodeConflict, "Category already exists")
			return
		}
		failInternal(c, err)
		return
	}

	respond(c, http.StatusCreated, category, "Category created successfully")
}

// Update 更新分类，改名会重新生成 slug
func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		fail(c, response.CodeBadRequest, "Invalid category ID")
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	category, err := services.UpdateCategory(id, services.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fail(c, response.CodeNotFound, "Category not found")
		case errors.Is(err, services.ErrSlugTaken):
			fail(c, response.CodeConflict, "Category already exists")
		default:
			failInternal(c, err)
		}
		return
	}

	respond(c, http.StatusOK, category, "Category updated successfully")
}

// Delete 删除分类及引用它的所有关联行
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		fail(c, response.CodeBadRequest, "Invalid category ID")
		return
	}

	if err := services.DeleteCategory(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, response.CodeNotFound, "Category not found")
			return
		}
		failInternal(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Category deleted successfully")
}
