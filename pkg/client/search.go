package client

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// 排序键与方向
type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByUpdatedAt SortKey = "updated_at"
	SortByTitle     SortKey = "title"
	SortByPublished SortKey = "published"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const maxSearchHistory = 10

// DateRange 创建时间范围过滤，nil 表示不限
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// PostFilters 列表页的过滤与排序选择
type PostFilters struct {
	Search      string    `json:"search"`
	CategoryIDs []string  `json:"category_ids"`
	Published   *bool     `json:"published"` // nil = 全部，true = 已发布，false = 草稿
	DateRange   DateRange `json:"date_range"`
	SortBy      SortKey   `json:"sort_by"`
	SortOrder   SortOrder `json:"sort_order"`
}

// SearchState 搜索/过滤/分页状态。
// 显式状态对象 + 更新方法，不做全局单例。
type SearchState struct {
	Query       string
	Filters     PostFilters
	CurrentPage int
	PageSize    int
	Searching   bool
	History     []string
}

func defaultFilters() PostFilters {
	return PostFilters{
		CategoryIDs: []string{},
		SortBy:      SortByCreatedAt,
		SortOrder:   SortDesc,
	}
}

func NewSearchState() *SearchState {
	return &SearchState{
		Filters:     defaultFilters(),
		CurrentPage: 1,
		PageSize:    10,
		History:     []string{},
	}
}

// SetQuery 更新查询词，非空时记入搜索历史
func (s *SearchState) SetQuery(query string) {
	s.Query = query
	if strings.TrimSpace(query) != "" {
		s.AddToHistory(query)
	}
}

// SetSearchFilter 更新文本过滤条件，回到第一页
func (s *SearchState) SetSearchFilter(search string) {
	s.Filters.Search = search
	s.CurrentPage = 1
}

// SetPublished 更新发布状态过滤，回到第一页
func (s *SearchState) SetPublished(published *bool) {
	s.Filters.Published = published
	s.CurrentPage = 1
}

// ToggleCategory 选中/取消选中一个分类，回到第一页
func (s *SearchState) ToggleCategory(categoryID string) {
	for i, id := range s.Filters.CategoryIDs {
		if id == categoryID {
			s.Filters.CategoryIDs = append(s.Filters.CategoryIDs[:i], s.Filters.CategoryIDs[i+1:]...)
			s.CurrentPage = 1
			return
		}
	}
	s.Filters.CategoryIDs = append(s.Filters.CategoryIDs, categoryID)
	s.CurrentPage = 1
}

// SetDateRange 更新时间范围过滤，回到第一页
func (s *SearchState) SetDateRange(from, to *time.Time) {
	s.Filters.DateRange = DateRange{From: from, To: to}
	s.CurrentPage = 1
}

// SetSort 更新排序键和方向
func (s *SearchState) SetSort(key SortKey, order SortOrder) {
	s.Filters.SortBy = key
	s.Filters.SortOrder = order
}

// ClearFilters 清空过滤条件，回到第一页
func (s *SearchState) ClearFilters() {
	s.Filters = defaultFilters()
	s.CurrentPage = 1
}

// ResetSearch 完全重置（历史保留）
func (s *SearchState) ResetSearch() {
	s.Query = ""
	s.Filters = defaultFilters()
	s.CurrentPage = 1
	s.Searching = false
}

func (s *SearchState) SetPage(page int) {
	if page >= 1 {
		s.CurrentPage = page
	}
}

func (s *SearchState) NextPage() {
	s.CurrentPage++
}

func (s *SearchState) PrevPage() {
	if s.CurrentPage > 1 {
		s.CurrentPage--
	}
}

// SetPageSize 修改每页条数并回到第一页
func (s *SearchState) SetPageSize(size int) {
	if size >= 1 {
		s.PageSize = size
		s.CurrentPage = 1
	}
}

func (s *SearchState) SetSearching(searching bool) {
	s.Searching = searching
}

// AddToHistory 记录查询词，去重置顶，最多保留 10 条
func (s *SearchState) AddToHistory(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	s.RemoveFromHistory(query)
	s.History = append([]string{query}, s.History...)
	if len(s.History) > maxSearchHistory {
		s.History = s.History[:maxSearchHistory]
	}
}

func (s *SearchState) RemoveFromHistory(query string) {
	for i, item := range s.History {
		if item == query {
			s.History = append(s.History[:i], s.History[i+1:]...)
			return
		}
	}
}

func (s *SearchState) ClearHistory() {
	s.History = []string{}
}

// Paginate 对服务端返回的完整结果做客户端排序和分页
func (s *SearchState) Paginate(posts []Post) []Post {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)

	less := func(a, b Post) bool {
		switch s.Filters.SortBy {
		case SortByUpdatedAt:
			return a.UpdatedAt.Before(b.UpdatedAt)
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByPublished:
			return !a.Published && b.Published
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if s.Filters.SortOrder == SortAsc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})

	start := (s.CurrentPage - 1) * s.PageSize
	if start >= len(sorted) {
		return []Post{}
	}
	end := start + s.PageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}

// TotalPages 根据结果总数计算页数，至少 1 页
func (s *SearchState) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	pages := (total + s.PageSize - 1) / s.PageSize
	return pages
}

// searchSnapshot 跨会话持久化的部分：过滤条件和每页条数。
// 临时的查询词不持久化。
type searchSnapshot struct {
	Filters  PostFilters `json:"filters"`
	PageSize int         `json:"page_size"`
}

// Snapshot 导出需要持久化的状态
func (s *SearchState) Snapshot() ([]byte, error) {
	return json.Marshal(searchSnapshot{
		Filters:  s.Filters,
		PageSize: s.PageSize,
	})
}

// Restore 从快照恢复，查询词和页码回到初始值
func (s *SearchState) Restore(data []byte) error {
	var snap searchSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Filters.CategoryIDs == nil {
		snap.Filters.CategoryIDs = []string{}
	}
	if snap.Filters.SortBy == "" {
		snap.Filters.SortBy = SortByCreatedAt
	}
	if snap.Filters.SortOrder == "" {
		snap.Filters.SortOrder = SortDesc
	}
	s.Filters = snap.Filters
	if snap.PageSize >= 1 {
		s.PageSize = snap.PageSize
	}
	s.Query = ""
	s.CurrentPage = 1
	return nil
}
