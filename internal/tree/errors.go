package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID 添加评论时 ID 已存在
	ErrDuplicateID = errors.New("comment id already exists")
	// ErrParentNotFound 添加评论时引用的父评论不存在
	ErrParentNotFound = errors.New("parent comment does not exist")
	// ErrCommentNotFound 更新/删除/遍历起点引用的评论不存在
	ErrCommentNotFound = errors.New("comment does not exist")
)

// DeserializationError 反序列化失败，Field 标明出错的字段
type DeserializationError struct {
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deserialize field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("deserialize: missing required field %q", e.Field)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
