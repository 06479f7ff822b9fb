package tree

import (
	"fmt"
)

// CommentTree 持有全部评论节点，nodes 是唯一事实来源。
// Go 的 map 不保证遍历顺序，order 记录插入顺序，
// 保证根节点迭代结果是确定的。
type CommentTree struct {
	nodes map[int]*CommentNode
	order []int
}

// NewCommentTree 创建一棵空树
func NewCommentTree() *CommentTree {
	return &CommentTree{
		nodes: make(map[int]*CommentNode),
		order: make([]int, 0),
	}
}

// AddComment 新增评论。id 必须未被占用，parentID 若给出必须已存在。
// 校验全部通过后才会修改树，失败时树保持原样。
func (t *CommentTree) AddComment(id int, text, author string, parentID *int) (*CommentNode, error) {
	if _, exists := t.nodes[id]; exists {
		return nil, fmt.Errorf("comment %d: %w", id, ErrDuplicateID)
	}

	var parent *CommentNode
	if parentID != nil {
		p, ok := t.nodes[*parentID]
		if !ok {
			return nil, fmt.Errorf("parent %d: %w", *parentID, ErrParentNotFound)
		}
		parent = p
	}

	node := NewCommentNode(id, text, author, parentID)
	t.nodes[id] = node
	t.order = append(t.order, id)
	if parent != nil {
		parent.Children = append(parent.Children, node)
	}
	return node, nil
}

// Update 部分更新。nil 槽位表示保持原值，避免空字符串哨兵的歧义。
type Update struct {
	Text   *string
	Author *string
}

// UpdateComment 按 Update 中显式给出的槽位就地覆盖，不影响父子链接
func (t *CommentTree) UpdateComment(id int, upd Update) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("comment %d: %w", id, ErrCommentNotFound)
	}
	if upd.Text != nil {
		node.Text = *upd.Text
	}
	if upd.Author != nil {
		node.Author = *upd.Author
	}
	return nil
}

// DeleteComment 删除评论及其整棵子树，子评论不提升、直接删除。
// 同时从父节点的 Children 中移除该评论。
func (t *CommentTree) DeleteComment(id int) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("comment %d: %w", id, ErrCommentNotFound)
	}

	if node.ParentID != nil {
		if parent, ok := t.nodes[*node.ParentID]; ok {
			kept := make([]*CommentNode, 0, len(parent.Children))
			for _, child := range parent.Children {
				if child.ID != id {
					kept = append(kept, child)
				}
			}
			parent.Children = kept
		}
	}

	t.removeSubtree(node)
	return nil
}

// removeSubtree 将节点及所有后代从 nodes 和 order 中移除
func (t *CommentTree) removeSubtree(node *CommentNode) {
	delete(t.nodes, node.ID)
	for i, id := range t.order {
		if id == node.ID {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	for _, child := range node.Children {
		t.removeSubtree(child)
	}
}

// Get 按 ID 查找节点
func (t *CommentTree) Get(id int) (*CommentNode, bool) {
	node, ok := t.nodes[id]
	return node, ok
}

// Len 当前节点总数
func (t *CommentTree) Len() int {
	return len(t.nodes)
}

// Roots 按插入顺序返回所有顶层评论
func (t *CommentTree) Roots() []*CommentNode {
	roots := make([]*CommentNode, 0)
	for _, id := range t.order {
		if node, ok := t.nodes[id]; ok && node.IsRoot() {
			roots = append(roots, node)
		}
	}
	return roots
}

// Depth 从 ParentID 向上走到根，返回走过的链接数。
// 不存在的 ID 返回 ErrCommentNotFound。
func (t *CommentTree) Depth(id int) (int, error) {
	node, ok := t.nodes[id]
	if !ok {
		return 0, fmt.Errorf("comment %d: %w", id, ErrCommentNotFound)
	}
	return t.depth(node), nil
}

func (t *CommentTree) depth(node *CommentNode) int {
	d := 0
	for pid := node.ParentID; pid != nil; {
		parent, ok := t.nodes[*pid]
		if !ok {
			break
		}
		d++
		pid = parent.ParentID
	}
	return d
}
