// Package storage 是序列化文本的文件落盘出入口。
// 树本身不碰文件系统，导出的 JSON/XML 文本经由这里读写。
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store 以一个数据目录为根的文本读写器
type Store struct {
	dir string
}

// NewStore 创建 Store，目录不存在时自动建立
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: data directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path 返回文件在数据目录下的完整路径
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// SaveText 全量覆盖写入 UTF-8 文本
func (s *Store) SaveText(name, text string) error {
	if name == "" {
		return fmt.Errorf("storage: filename cannot be empty")
	}
	if err := os.WriteFile(s.Path(name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// LoadText 读取整个文件为 UTF-8 文本
func (s *Store) LoadText(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: filename cannot be empty")
	}
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", fmt.Errorf("storage: read %s: %w", name, err)
	}
	return string(data), nil
}

// Exists 文件是否存在
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}
