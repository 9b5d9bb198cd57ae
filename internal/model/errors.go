package model

import "errors"

var (
	// ErrNotFound 分类、工具或收藏不存在
	ErrNotFound = errors.New("not found")
	// ErrValidation 请求参数缺失或不合法
	ErrValidation = errors.New("validation failed")
	// ErrNotImplemented 内置工具没有对应的分析实现
	ErrNotImplemented = errors.New("not implemented")
	// ErrPersistence 收藏写盘失败，内存状态已修改
	ErrPersistence = errors.New("persistence failed")
)
