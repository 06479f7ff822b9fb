package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"yulin/internal/storage"
	"yulin/internal/tree"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// 搭一个与 main 同构的路由（不含 HTML 页面）
func newTestRouter(t *testing.T) (*gin.Engine, *tree.CommentTree) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tr := tree.NewCommentTree()
	var mu sync.Mutex
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	r := gin.New()
	r.Use(sessions.Sessions("yulin_test", cookie.NewStore([]byte("test_secret"))))

	commentHandler := NewCommentHandler(tr, &mu)
	exportHandler := NewExportHandler(tr, &mu, store)

	r.POST("/comment", commentHandler.Create)
	r.POST("/comment/:id/edit", commentHandler.Update)
	r.DELETE("/comment/:id", commentHandler.Delete)
	r.GET("/traverse/:mode", commentHandler.Traverse)
	r.GET("/export/:format", exportHandler.Export)
	r.POST("/import/:format", exportHandler.Import)

	return r, tr
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateComment(t *testing.T) {
	r, tr := newTestRouter(t)

	w := postForm(r, "/comment", url.Values{
		"id": {"1"}, "text": {"first"}, "author": {"Alice"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("create root: code = %d, body = %s", w.Code, w.Body.String())
	}

	w = postForm(r, "/comment", url.Values{
		"id": {"2"}, "text": {"reply"}, "author": {"Bob"}, "parent_id": {"1"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("create reply: code = %d, body = %s", w.Code, w.Body.String())
	}

	node, ok := tr.Get(2)
	if !ok || node.ParentID == nil || *node.ParentID != 1 {
		t.Error("reply not linked under parent 1")
	}
}

func TestCreateCommentErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	postForm(r, "/comment", url.Values{"id": {"1"}, "text": {"a"}, "author": {"x"}})

	// 重复 ID
	w := postForm(r, "/comment", url.Values{"id": {"1"}, "text": {"b"}, "author": {"y"}})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate id: code = %d, want 409", w.Code)
	}

	// 父评论不存在
	w = postForm(r, "/comment", url.Values{"id": {"9"}, "text": {"b"}, "author": {"y"}, "parent_id": {"404"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing parent: code = %d, want 404", w.Code)
	}

	// ID 不是整数
	w = postForm(r, "/comment", url.Values{"id": {"abc"}, "text": {"b"}, "author": {"y"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: code = %d, want 400", w.Code)
	}
}

func TestUpdateCommentPartialForm(t *testing.T) {
	r, tr := newTestRouter(t)
	postForm(r, "/comment", url.Values{"id": {"1"}, "text": {"first"}, "author": {"Alice"}})

	// 表单只带 text，author 不应被动到
	w := postForm(r, "/comment/1/edit", url.Values{"text": {"edited"}})
	if w.Code != http.StatusFound {
		t.Fatalf("update: code = %d, body = %s", w.Code, w.Body.String())
	}
	node, _ := tr.Get(1)
	if node.Text != "edited" || node.Author != "Alice" {
		t.Errorf("after update: text=%q author=%q", node.Text, node.Author)
	}

	w = postForm(r, "/comment/404/edit", url.Values{"text": {"x"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("update missing: code = %d, want 404", w.Code)
	}
}

func TestDeleteCommentSubtreeHTTP(t *testing.T) {
	r, tr := newTestRouter(t)
	postForm(r, "/comment", url.Values{"id": {"1"}, "text": {"root"}, "author": {"A"}})
	postForm(r, "/comment", url.Values{"id": {"2"}, "text": {"child"}, "author": {"B"}, "parent_id": {"1"}})

	req := httptest.NewRequest("DELETE", "/comment/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: code = %d", w.Code)
	}
	if tr.Len() != 0 {
		t.Errorf("tree has %d nodes after subtree delete, want 0", tr.Len())
	}
}

func TestTraverseEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	postForm(r, "/comment", url.Values{"id": {"1"}, "text": {"root"}, "author": {"Alice"}})
	postForm(r, "/comment", url.Values{"id": {"2"}, "text": {"reply"}, "author": {"Bob"}, "parent_id": {"1"}})

	req := httptest.NewRequest("GET", "/traverse/dfs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("traverse: code = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "- root (by Alice)") || !strings.Contains(body, "    - reply (by Bob)") {
		t.Errorf("unexpected traversal output:\n%s", body)
	}

	// 起点不存在
	req = httptest.NewRequest("GET", "/traverse/bfs?start=42", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing start: code = %d, want 404", w.Code)
	}

	// 非法模式
	req = httptest.NewRequest("GET", "/traverse/zigzag", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad mode: code = %d, want 400", w.Code)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	r, tr := newTestRouter(t)
	postForm(r, "/comment", url.Values{"id": {"1"}, "text": {"root"}, "author": {"Alice"}})
	postForm(r, "/comment", url.Values{"id": {"2"}, "text": {"reply"}, "author": {"Bob"}, "parent_id": {"1"}})

	for _, format := range []string{"json", "xml"} {
		req := httptest.NewRequest("GET", "/export/"+format, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("export %s: code = %d", format, w.Code)
		}
		doc := w.Body.String()

		// 清空再导入，应恢复原样
		if err := tr.FromJSON(`{"comments": []}`); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		req = httptest.NewRequest("POST", "/import/"+format, strings.NewReader(doc))
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("import %s: code = %d, body = %s", format, w.Code, w.Body.String())
		}
		if tr.Len() != 2 {
			t.Errorf("import %s: tree has %d nodes, want 2", format, tr.Len())
		}
	}
}

func TestImportMalformed(t *testing.T) {
	r, tr := newTestRouter(t)
	postForm(r, "/comment", url.Values{"id": {"1"}, "text": {"keep"}, "author": {"A"}})

	req := httptest.NewRequest("POST", "/import/json", strings.NewReader(`{"comments": [`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed import: code = %d, want 400", w.Code)
	}
	// 失败的导入不能动原树
	if _, ok := tr.Get(1); !ok {
		t.Error("existing comment lost after failed import")
	}
}
