package tree

import (
	"encoding/xml"
	"fmt"
)

// nodeDoc 是节点在 JSON/XML 文档中的形态，两种编码共用一套结构。
// 必填字段用指针，解码后为 nil 即可定位缺失的字段。
type nodeDoc struct {
	XMLName  xml.Name  `json:"-" xml:"comment"`
	ID       *int      `json:"id" xml:"id"`
	Text     *string   `json:"text" xml:"text"`
	Author   *string   `json:"author" xml:"author"`
	ParentID *int      `json:"parent_id" xml:"parent_id,omitempty"`
	Children []nodeDoc `json:"children" xml:"children>comment"`
}

// treeDoc 整棵树的文档形态：JSON 为 {"comments":[...]}，
// XML 为 <comments> 根元素
type treeDoc struct {
	XMLName  xml.Name  `json:"-" xml:"comments"`
	Comments []nodeDoc `json:"comments" xml:"comment"`
}

// doc 递归导出节点及其子树，纯函数、无副作用
func (n *CommentNode) doc() nodeDoc {
	d := nodeDoc{
		ID:       &n.ID,
		Text:     &n.Text,
		Author:   &n.Author,
		ParentID: n.ParentID,
		Children: make([]nodeDoc, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		d.Children = append(d.Children, child.doc())
	}
	return d
}

// nodeFromDoc 从文档形态重建节点，先递归构建子节点再挂载。
// ParentID 一律按嵌套位置重新推导，文档内嵌的 parent_id 不被采信，
// 被篡改的文档无法让 parent_id 与实际嵌套脱节。
func nodeFromDoc(d nodeDoc, parentID *int) (*CommentNode, error) {
	if d.ID == nil {
		return nil, &DeserializationError{Field: "id"}
	}
	if d.Text == nil {
		return nil, &DeserializationError{Field: "text"}
	}
	if d.Author == nil {
		return nil, &DeserializationError{Field: "author"}
	}

	node := NewCommentNode(*d.ID, *d.Text, *d.Author, parentID)
	for _, childDoc := range d.Children {
		child, err := nodeFromDoc(childDoc, &node.ID)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// export 按插入顺序导出所有根节点
func (t *CommentTree) export() treeDoc {
	doc := treeDoc{Comments: make([]nodeDoc, 0)}
	for _, root := range t.Roots() {
		doc.Comments = append(doc.Comments, root.doc())
	}
	return doc
}

// rebuild 用文档内容整体替换 nodes（全量替换而非合并）。
// 先在一棵新树上完整重建，全部成功后才原子替换，
// 任何一步出错都不会动到原树。
func (t *CommentTree) rebuild(docs []nodeDoc) error {
	fresh := NewCommentTree()
	for _, d := range docs {
		root, err := nodeFromDoc(d, nil)
		if err != nil {
			return err
		}
		if err := fresh.graft(root); err != nil {
			return err
		}
	}
	t.nodes = fresh.nodes
	t.order = fresh.order
	return nil
}

// graft 把重建好的子树登记进 nodes 映射，ID 重复视为文档损坏
func (t *CommentTree) graft(node *CommentNode) error {
	if _, exists := t.nodes[node.ID]; exists {
		return &DeserializationError{
			Field: "id",
			Err:   fmt.Errorf("duplicate comment id %d", node.ID),
		}
	}
	t.nodes[node.ID] = node
	t.order = append(t.order, node.ID)
	for _, child := range node.Children {
		if err := t.graft(child); err != nil {
			return err
		}
	}
	return nil
}
