package tree

import (
	"encoding/json"
)

// ToJSON 序列化整棵树为 {"comments":[...]} 文档并返回文本。
// 文件落盘由调用方通过 storage 完成，这里只负责生成文本。
func (t *CommentTree) ToJSON() (string, error) {
	data, err := json.MarshalIndent(t.export(), "", "    ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON 解析 {"comments":[...]} 文档并整体替换树的内容。
// JSON 语法错误、缺少 comments 键或节点缺少必填字段
// 都返回 *DeserializationError，且树保持原样。
func (t *CommentTree) FromJSON(data string) error {
	var doc treeDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return &DeserializationError{Field: "comments", Err: err}
	}
	if doc.Comments == nil {
		return &DeserializationError{Field: "comments"}
	}
	return t.rebuild(doc.Comments)
}
