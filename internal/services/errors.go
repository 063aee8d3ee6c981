package services

import "errors"

// 领域层统一错误哨兵，由 handlers 映射为 HTTP 状态码。
var (
	// ErrNotFound 表示按 id 查找不到对应行。
	ErrNotFound = errors.New("not_found")
	// ErrDuplicate 表示唯一字段（username/email）冲突。
	ErrDuplicate = errors.New("duplicate")
)
