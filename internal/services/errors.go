package services

import "errors"

var (
	// ErrSlugTaken slug 已被占用（标题/名称转换后冲突）
	ErrSlugTaken = errors.New("slug already taken")
	// ErrUnknownCategory 关联的分类 ID 不存在
	ErrUnknownCategory = errors.New("unknown category id")
)
