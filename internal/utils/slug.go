package utils

import (
	"github.com/gosimple/slug"
)

// GenerateSlug 把标题转换为 URL 友好的 slug。
// 小写、连字符分隔，去掉变音符号和标点。
// 纯函数，不保证唯一性，唯一性由调用方查库确认。
func GenerateSlug(title string) string {
	return slug.Make(title)
}
