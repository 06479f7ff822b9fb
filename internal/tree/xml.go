package tree

import (
	"encoding/xml"
)

// ToXML 序列化整棵树为 <comments> 文档，输出带 XML 声明头。
// 每个节点是一个 <comment> 元素，子评论包在 <children> 里，
// 根评论省略 parent_id 元素。
func (t *CommentTree) ToXML() (string, error) {
	data, err := xml.MarshalIndent(t.export(), "", "    ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(data), nil
}

// FromXML 解析 <comments> 文档并整体替换树的内容，
// 带不带声明头都接受。失败时返回 *DeserializationError，树保持原样。
func (t *CommentTree) FromXML(data string) error {
	var doc treeDoc
	if err := xml.Unmarshal([]byte(data), &doc); err != nil {
		return &DeserializationError{Field: "comments", Err: err}
	}
	return t.rebuild(doc.Comments)
}
