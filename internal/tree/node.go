package tree

// CommentNode 单条评论及其直接子评论
type CommentNode struct {
	ID       int            `json:"id"`
	Text     string         `json:"text"`
	Author   string         `json:"author"`
	ParentID *int           `json:"parent_id"` // 顶层评论为 nil
	Children []*CommentNode `json:"children"`  // 按 AddComment 调用顺序
}

// NewCommentNode 构造一个没有子评论的节点。parentID 会被复制，
// 调用方后续修改指针指向的值不影响节点。
func NewCommentNode(id int, text, author string, parentID *int) *CommentNode {
	n := &CommentNode{
		ID:       id,
		Text:     text,
		Author:   author,
		Children: make([]*CommentNode, 0),
	}
	if parentID != nil {
		pid := *parentID
		n.ParentID = &pid
	}
	return n
}

// IsRoot 是否为顶层评论
func (n *CommentNode) IsRoot() bool {
	return n.ParentID == nil
}
