package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID 解析评论 ID，必须是整数
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid comment id %q", s)
	}
	return id, nil
}

// ParseOptionalID 解析可选的父评论 ID，空串表示顶层评论返回 nil
func ParseOptionalID(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid parent id %q", s)
	}
	return &id, nil
}

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
