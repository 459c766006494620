package client

import (
	"strings"

	"github.com/google/uuid"
)

// PostForm 文章编辑表单状态。
// 每次编辑单字段校验一次，提交前整体校验一次；
// 提交成功或取消后 Reset 回初始状态。
type PostForm struct {
	Title       string
	Content     string
	Published   bool
	CategoryIDs []string

	Errors     map[string]string
	Dirty      bool
	Submitting bool
}

func NewPostForm() *PostForm {
	return &PostForm{
		CategoryIDs: []string{},
		Errors:      map[string]string{},
	}
}

func (f *PostForm) SetTitle(title string) {
	f.Title = title
	f.Dirty = true
	f.validateTitle()
}

func (f *PostForm) SetContent(content string) {
	f.Content = content
	f.Dirty = true
	f.validateContent()
}

func (f *PostForm) SetPublished(published bool) {
	f.Published = published
	f.Dirty = true
}

// ToggleCategory 勾选/取消勾选一个分类
func (f *PostForm) ToggleCategory(categoryID string) {
	f.Dirty = true
	for i, id := range f.CategoryIDs {
		if id == categoryID {
			f.CategoryIDs = append(f.CategoryIDs[:i], f.CategoryIDs[i+1:]...)
			f.validateCategories()
			return
		}
	}
	f.CategoryIDs = append(f.CategoryIDs, categoryID)
	f.validateCategories()
}

// Validate 整体校验，全部通过返回 true
func (f *PostForm) Validate() bool {
	f.validateTitle()
	f.validateContent()
	f.validateCategories()
	return len(f.Errors) == 0
}

func (f *PostForm) validateTitle() {
	switch {
	case strings.TrimSpace(f.Title) == "":
		f.Errors["title"] = "Title is required"
	case len(f.Title) > 100:
		f.Errors["title"] = "Title must be less than 100 characters"
	default:
		delete(f.Errors, "title")
	}
}

func (f *PostForm) validateContent() {
	switch {
	case strings.TrimSpace(f.Content) == "":
		f.Errors["content"] = "Content is required"
	case len(f.Content) > 10000:
		f.Errors["content"] = "Content must be less than 10,000 characters"
	default:
		delete(f.Errors, "content")
	}
}

func (f *PostForm) validateCategories() {
	for _, id := range f.CategoryIDs {
		if uuid.Validate(id) != nil {
			f.Errors["category_ids"] = "Invalid category ID"
			return
		}
	}
	delete(f.Errors, "category_ids")
}

func (f *PostForm) SetSubmitting(submitting bool) {
	f.Submitting = submitting
}

// Reset 清空表单（提交成功或取消时调用）
func (f *PostForm) Reset() {
	*f = PostForm{
		CategoryIDs: []string{},
		Errors:      map[string]string{},
	}
}

// CategoryForm 分类编辑表单状态
type CategoryForm struct {
	Name        string
	Description string

	Errors     map[string]string
	Dirty      bool
	Submitting bool
}

func NewCategoryForm() *CategoryForm {
	return &CategoryForm{Errors: map[string]string{}}
}

func (f *CategoryForm) SetName(name string) {
	f.Name = name
	f.Dirty = true
	f.validateName()
}

func (f *CategoryForm) SetDescription(description string) {
	f.Description = description
	f.Dirty = true
	f.validateDescription()
}

// Validate 整体校验，全部通过返回 true
func (f *CategoryForm) Validate() bool {
	f.validateName()
	f.validateDescription()
	return len(f.Errors) == 0
}

func (f *CategoryForm) validateName() {
	switch {
	case strings.TrimSpace(f.Name) == "":
		f.Errors["name"] = "Name is required"
	case len(f.Name) > 50:
		f.Errors["name"] = "Name must be less than 50 characters"
	default:
		delete(f.Errors, "name")
	}
}

func (f *CategoryForm) validateDescription() {
	if len(f.Description) > 200 {
		f.Errors["description"] = "Description must be less than 200 characters"
	} else {
		delete(f.Errors, "description")
	}
}

func (f *CategoryForm) SetSubmitting(submitting bool) {
	f.Submitting = submitting
}

// Reset 清空表单
func (f *CategoryForm) Reset() {
	*f = CategoryForm{Errors: map[string]string{}}
}
