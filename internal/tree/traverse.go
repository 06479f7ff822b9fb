package tree

import (
	"fmt"
)

// VisitFunc 遍历回调，按访问顺序对每个节点调用一次
type VisitFunc func(*CommentNode)

// TraverseDFS 对所有根节点（按插入顺序）做先序深度优先遍历
func (t *CommentTree) TraverseDFS(visit VisitFunc) {
	for _, root := range t.Roots() {
		dfs(root, visit)
	}
}

// TraverseDFSFrom 从 startID 的子树开始先序遍历
func (t *CommentTree) TraverseDFSFrom(startID int, visit VisitFunc) error {
	node, ok := t.nodes[startID]
	if !ok {
		return fmt.Errorf("start id %d: %w", startID, ErrCommentNotFound)
	}
	dfs(node, visit)
	return nil
}

// 先序：先访问节点本身，再从左到右访问子节点
func dfs(node *CommentNode, visit VisitFunc) {
	visit(node)
	for _, child := range node.Children {
		dfs(child, visit)
	}
}

// TraverseBFS 对整棵树做层序遍历，队列以所有根节点（插入顺序）起始
func (t *CommentTree) TraverseBFS(visit VisitFunc) {
	bfs(t.Roots(), visit)
}

// TraverseBFSFrom 从 startID 单个节点起始的层序遍历
func (t *CommentTree) TraverseBFSFrom(startID int, visit VisitFunc) error {
	node, ok := t.nodes[startID]
	if !ok {
		return fmt.Errorf("start id %d: %w", startID, ErrCommentNotFound)
	}
	bfs([]*CommentNode{node}, visit)
	return nil
}

// FIFO 队列：出队、访问、子节点按序入队
func bfs(seed []*CommentNode, visit VisitFunc) {
	queue := make([]*CommentNode, len(seed))
	copy(queue, seed)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		visit(node)
		queue = append(queue, node.Children...)
	}
}
