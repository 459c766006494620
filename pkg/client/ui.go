package client

import "encoding/json"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ModalKind 模态框种类，同一种类同时最多打开一个
type ModalKind string

const (
	ModalCreatePost    ModalKind = "create_post"
	ModalEditPost      ModalKind = "edit_post"
	ModalDeleteConfirm ModalKind = "delete_confirm"
)

// UIState 页面框架状态：主题、侧栏、模态框和当前选中的实体
type UIState struct {
	Theme          Theme
	SidebarOpen    bool
	MobileMenuOpen bool

	openModal      ModalKind
	SelectedPostID string
}

func NewUIState() *UIState {
	return &UIState{Theme: ThemeLight}
}

func (u *UIState) SetTheme(theme Theme) {
	u.Theme = theme
}

func (u *UIState) ToggleSidebar() {
	u.SidebarOpen = !u.SidebarOpen
}

func (u *UIState) ToggleMobileMenu() {
	u.MobileMenuOpen = !u.MobileMenuOpen
}

// OpenModal 打开一个模态框；已有打开的会先被关掉，
// 保证同一时刻每种模态框最多一个。targetID 是编辑/删除的目标实体。
func (u *UIState) OpenModal(kind ModalKind, targetID string) {
	u.openModal = kind
	u.SelectedPostID = targetID
}

// CloseModal 关闭当前模态框并清掉选中项
func (u *UIState) CloseModal() {
	u.openModal = ""
	u.SelectedPostID = ""
}

// IsOpen 指定种类的模态框是否打开
func (u *UIState) IsOpen(kind ModalKind) bool {
	return u.openModal == kind
}

// uiSnapshot 持久化主题和侧栏状态，模态框状态不持久化
type uiSnapshot struct {
	Theme       Theme `json:"theme"`
	SidebarOpen bool  `json:"sidebar_open"`
}

func (u *UIState) Snapshot() ([]byte, error) {
	return json.Marshal(uiSnapshot{Theme: u.Theme, SidebarOpen: u.SidebarOpen})
}

func (u *UIState) Restore(data []byte) error {
	var snap uiSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Theme == "" {
		snap.Theme = ThemeLight
	}
	u.Theme = snap.Theme
	u.SidebarOpen = snap.SidebarOpen
	u.openModal = ""
	u.SelectedPostID = ""
	return nil
}
