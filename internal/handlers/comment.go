package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"yulin/internal/services"
	"yulin/internal/tree"
	"yulin/internal/utils"

	"github.com/gin-gonic/gin"
)

const treeCacheKey = "tree:index"

// CommentHandler 评论树的页面与变更接口。
// gin 并发处理请求，树本身不加锁，这里用一把互斥锁
// 罩住所有变更、遍历和序列化。
type CommentHandler struct {
	tr *tree.CommentTree
	mu *sync.Mutex
}

func NewCommentHandler(tr *tree.CommentTree, mu *sync.Mutex) *CommentHandler {
	return &CommentHandler{tr: tr, mu: mu}
}

// TreeEntry 树视图里的一行
type TreeEntry struct {
	ID       int
	Author   string
	Depth    int
	IndentPx int
	HTML     template.HTML
	ParentID *int
}

// Index 评论树首页，DFS 顺序渲染，每行按深度缩进
func (h *CommentHandler) Index(c *gin.Context) {
	if cached := utils.GetCache().Get(treeCacheKey); cached != nil {
		if hData, ok := cached.(gin.H); ok {
			// Render 会往 map 里注入 Flash 等每请求数据，复制一份再用
			Render(c, http.StatusOK, "tree/index.html", cloneH(hData))
			return
		}
	}

	h.mu.Lock()
	entries := make([]TreeEntry, 0, h.tr.Len())
	h.tr.TraverseDFS(func(n *tree.CommentNode) {
		depth, _ := h.tr.Depth(n.ID)
		entries = append(entries, TreeEntry{
			ID:       n.ID,
			Author:   n.Author,
			Depth:    depth,
			IndentPx: depth * 24,
			HTML:     utils.RenderMarkdown(n.Text),
			ParentID: n.ParentID,
		})
	})
	count := h.tr.Len()
	h.mu.Unlock()

	hData := gin.H{
		"Title":   "评论树",
		"Entries": entries,
		"Count":   count,
	}
	utils.GetCache().Set(treeCacheKey, hData, 5*time.Minute)

	Render(c, http.StatusOK, "tree/index.html", cloneH(hData))
}

func cloneH(h gin.H) gin.H {
	out := make(gin.H, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Create 新增评论 (form: id, text, author, parent_id)
func (h *CommentHandler) Create(c *gin.Context) {
	id, err := utils.ParseID(c.PostForm("id"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	parentID, err := utils.ParseOptionalID(c.PostForm("parent_id"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	text := c.PostForm("text")
	author := c.PostForm("author")
	if text == "" || author == "" {
		c.String(http.StatusBadRequest, "text and author are required")
		return
	}

	h.mu.Lock()
	_, err = h.tr.AddComment(id, text, author, parentID)
	h.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, tree.ErrDuplicateID):
			c.String(http.StatusConflict, err.Error())
		case errors.Is(err, tree.ErrParentNotFound):
			c.String(http.StatusNotFound, err.Error())
		default:
			c.String(http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.invalidate()
	setFlash(c, "评论已发布")
	c.Redirect(http.StatusFound, "/")
}

// Update 部分更新评论，只覆盖表单里出现的字段
func (h *CommentHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	var upd tree.Update
	if text, ok := c.GetPostForm("text"); ok {
		upd.Text = &text
	}
	if author, ok := c.GetPostForm("author"); ok {
		upd.Author = &author
	}

	h.mu.Lock()
	err = h.tr.UpdateComment(id, upd)
	h.mu.Unlock()
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	h.invalidate()
	setFlash(c, "评论已更新")
	c.Redirect(http.StatusFound, "/")
}

// Delete 删除评论及其整棵子树
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	err = h.tr.DeleteComment(id)
	h.mu.Unlock()
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	h.invalidate()
	// HTMX delete：前端收到 200 后移除对应 DOM 节点
	c.Status(http.StatusOK)
}

// Traverse 纯文本遍历输出，mode 为 dfs 或 bfs，start 可选
func (h *CommentHandler) Traverse(c *gin.Context) {
	mode := c.Param("mode")
	if mode != "dfs" && mode != "bfs" {
		c.String(http.StatusBadRequest, "mode must be dfs or bfs")
		return
	}

	startID, err := utils.ParseOptionalID(c.Query("start"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	h.mu.Lock()
	switch {
	case startID == nil && mode == "dfs":
		h.tr.PrintDFS(&buf)
	case startID == nil:
		h.tr.PrintBFS(&buf)
	case mode == "dfs":
		err = h.tr.PrintDFSFrom(&buf, *startID)
	default:
		err = h.tr.PrintBFSFrom(&buf, *startID)
	}
	h.mu.Unlock()

	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	c.String(http.StatusOK, buf.String())
}

// invalidate 树变更后失效页面缓存并请求落盘
func (h *CommentHandler) invalidate() {
	utils.GetCache().Delete(treeCacheKey)
	if svc := services.GetSnapshotService(); svc != nil {
		svc.ScheduleSave()
	}
}
