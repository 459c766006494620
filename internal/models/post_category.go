package models

// PostCategory 文章与分类的多对多关联表。
// 没有独立主键，(post_id, category_id) 联合唯一。
// 级联删除由 service 层显式执行，数据库层不做 CASCADE。
type PostCategory struct {
	PostID     string   `gorm:"primaryKey;type:uuid" json:"post_id"`
	CategoryID string   `gorm:"primaryKey;type:uuid" json:"category_id"`
	Post       Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}
