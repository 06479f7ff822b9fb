package handlers

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"yulin/internal/services"
	"yulin/internal/storage"
	"yulin/internal/tree"
	"yulin/internal/utils"

	"github.com/gin-gonic/gin"
)

// ExportHandler 整棵树的 JSON/XML 导出导入
type ExportHandler struct {
	tr    *tree.CommentTree
	mu    *sync.Mutex
	store *storage.Store
}

func NewExportHandler(tr *tree.CommentTree, mu *sync.Mutex, store *storage.Store) *ExportHandler {
	return &ExportHandler{tr: tr, mu: mu, store: store}
}

// Export GET /export/:format (json|xml)。
// 带 ?save=1 时额外把文档写入数据目录。
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.Param("format")

	var (
		data        string
		err         error
		contentType string
		filename    string
	)

	h.mu.Lock()
	switch format {
	case "json":
		data, err = h.tr.ToJSON()
		contentType = "application/json; charset=utf-8"
		filename = "comments.json"
	case "xml":
		data, err = h.tr.ToXML()
		contentType = "application/xml; charset=utf-8"
		filename = "comments.xml"
	default:
		h.mu.Unlock()
		c.String(http.StatusBadRequest, "format must be json or xml")
		return
	}
	h.mu.Unlock()

	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	if c.Query("save") == "1" {
		if err := h.store.SaveText(filename, data); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
	}

	c.Data(http.StatusOK, contentType, []byte(data))
}

// Import POST /import/:format，请求体是整份文档，成功后全量替换
func (h *ExportHandler) Import(c *gin.Context) {
	format := c.Param("format")
	if format != "json" && format != "xml" {
		c.String(http.StatusBadRequest, "format must be json or xml")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "read request body: "+err.Error())
		return
	}

	h.mu.Lock()
	if format == "json" {
		err = h.tr.FromJSON(string(body))
	} else {
		err = h.tr.FromXML(string(body))
	}
	count := h.tr.Len()
	h.mu.Unlock()

	if err != nil {
		var dErr *tree.DeserializationError
		if errors.As(err, &dErr) {
			c.String(http.StatusBadRequest, dErr.Error())
		} else {
			c.String(http.StatusInternalServerError, err.Error())
		}
		return
	}

	// 整棵树换掉了，全部缓存作废
	utils.GetCache().Purge()
	if svc := services.GetSnapshotService(); svc != nil {
		svc.ScheduleSave()
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "comments": count})
}
