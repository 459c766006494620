package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"molin/internal/response"
	"molin/internal/services"
	"molin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required,max=10000"`
}

type updatePostRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=100"`
	Content     *string   `json:"content" binding:"omitempty,min=1,max=10000"`
	Published   *bool     `json:"published"`
	CategoryIDs *[]string `json:"category_ids" binding:"omitempty,dive,uuid"`
}

// GetAll 文章列表，支持 published / search / category_ids 过滤
func (h *PostHandler) GetAll(c *gin.Context) {
	var filter services.PostFilter

	if raw := c.Query("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			fail(c, response.CodeBadRequest, "Invalid published filter")
			return
		}
		filter.Published = &published
	}

	filter.Search = c.Query("search")

	if raw := c.Query("category_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.CategoryIDs = append(filter.CategoryIDs, id)
			}
		}
	}

	posts, err := services.ListPosts(filter)
	if err != nil {
		failInternal(c, err)
		return
	}

	respond(c, http.StatusOK, posts, "Posts retrieved successfully")
}

// GetBySlug 按 slug 查询文章详情，附带分类和渲染后的 HTML
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := services.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, response.CodeNotFound, "Post not found")
			return
		}
		failInternal(c, err)
		return
	}

	post.ContentHTML = utils.RenderMarkdown(post.Content)
	respond(c, http.StatusOK, post, "Post retrieved successfully")
}

// GetByID 按 ID 查询文章详情，附带分类和渲染后的 HTML
func (h *PostHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		fail(c, response.CodeBadRequest, "Invalid post ID")
		return
	}

	post, err := services.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, response.CodeNotFound, "Post not found")
			return
		}
		failInternal(c, err)
		return
	}

	post.ContentHTML = utils.RenderMarkdown(post.Content)
	respond(c, http.StatusOK, post, "Post retrieved successfully")
}

// Create 创建文章，默认未发布
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	post, err := services.CreatePost(req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			fail(c, response.CodeConflict, "Post already exists")
			return
		}
		failInternal(c, err)
		return
	}

	respond(c, http.StatusCreated, post, "Post created successfully")
}

// Update 更新文章，category_ids 出现时全量替换分类关联
func (h *PostHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		fail(c, response.CodeBadRequest, "Invalid post ID")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	post, err := services.UpdatePost(id, services.UpdatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Published:   req.Published,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fail(c, response.CodeNotFound, "Post not found")
		case errors.Is(err, services.ErrSlugTaken):
			fail(c, response.CodeConflict, "Post already exists")
		case errors.Is(err, services.ErrUnknownCategory):
			fail(c, response.CodeBadRequest, "One or more categories do not exist")
		default:
			failInternal(c, err)
		}
		return
	}

	respond(c, http.StatusOK, post, "Post updated successfully")
}

// Delete 删除文章及其分类关联
func (h *PostHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		fail(c, response.CodeBadRequest, "Invalid post ID")
		return
	}

	if err := services.DeletePost(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, response.CodeNotFound, "Post not found")
			return
		}
		failInternal(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Post deleted successfully")
}
