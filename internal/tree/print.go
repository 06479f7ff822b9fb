package tree

import (
	"fmt"
	"io"
	"strings"
)

// FormatLine 渲染单个节点为一行文本，缩进与深度成正比
func (t *CommentTree) FormatLine(node *CommentNode) string {
	indent := strings.Repeat("    ", t.depth(node))
	return fmt.Sprintf("%s- %s (by %s)", indent, node.Text, node.Author)
}

// PrintDFS 按先序深度优先把整棵树写入 w，每个节点一行
func (t *CommentTree) PrintDFS(w io.Writer) {
	t.TraverseDFS(func(node *CommentNode) {
		fmt.Fprintln(w, t.FormatLine(node))
	})
}

// PrintDFSFrom 同 PrintDFS，但只输出 startID 的子树
func (t *CommentTree) PrintDFSFrom(w io.Writer, startID int) error {
	return t.TraverseDFSFrom(startID, func(node *CommentNode) {
		fmt.Fprintln(w, t.FormatLine(node))
	})
}

// PrintBFS 按层序把整棵树写入 w
func (t *CommentTree) PrintBFS(w io.Writer) {
	t.TraverseBFS(func(node *CommentNode) {
		fmt.Fprintln(w, t.FormatLine(node))
	})
}

// PrintBFSFrom 同 PrintBFS，但以 startID 为起点
func (t *CommentTree) PrintBFSFrom(w io.Writer, startID int) error {
	return t.TraverseBFSFrom(startID, func(node *CommentNode) {
		fmt.Fprintln(w, t.FormatLine(node))
	})
}
