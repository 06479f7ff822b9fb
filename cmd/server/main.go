package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"sync"

	"yulin/internal/handlers"
	"yulin/internal/services"
	"yulin/internal/storage"
	"yulin/internal/tree"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	store, err := storage.NewStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	// 评论树与保护它的锁。树本身单线程，
	// web 层所有访问都经过这把锁（见 handlers）。
	commentTree := tree.NewCommentTree()
	var treeMu sync.Mutex

	snapshot := services.InitSnapshotService(commentTree, &treeMu, store)
	if snapshot.Restore() {
		log.Printf("Restored %d comments from snapshot", commentTree.Len())
	} else {
		seedComments(commentTree)
		log.Printf("Seeded %d demo comments", commentTree.Len())
	}

	// 启动时在控制台演示两种遍历
	if os.Getenv("DEMO_PRINT") != "0" {
		fmt.Println("DFS:")
		commentTree.PrintDFS(os.Stdout)
		fmt.Println("BFS:")
		commentTree.PrintBFS(os.Stdout)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions (flash messages)
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	sessionStore := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("yulin_session", sessionStore))

	r.HTMLRender = loadTemplates("./web/templates")

	// Handlers
	commentHandler := handlers.NewCommentHandler(commentTree, &treeMu)
	exportHandler := handlers.NewExportHandler(commentTree, &treeMu, store)

	// 页面
	r.GET("/", commentHandler.Index)

	// 评论变更
	r.POST("/comment", commentHandler.Create)
	r.POST("/comment/:id/edit", commentHandler.Update)
	r.DELETE("/comment/:id", commentHandler.Delete)

	// 遍历与导入导出
	r.GET("/traverse/:mode", commentHandler.Traverse)
	r.GET("/export/:format", exportHandler.Export)
	r.POST("/import/:format", exportHandler.Import)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("YuLin server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// seedComments 在没有快照时写入演示数据
func seedComments(t *tree.CommentTree) {
	pid := func(v int) *int { return &v }
	seeds := []struct {
		id       int
		text     string
		author   string
		parentID *int
	}{
		{1, "Root comment", "Alice", nil},
		{2, "Reply to root", "Bob", pid(1)},
		{3, "Another reply", "Charlie", pid(1)},
		{4, "Nested reply", "Dave", pid(2)},
		{5, "Further nested reply", "Eve", pid(4)},
		{6, "Sibling reply to nested", "Frank", pid(2)},
		{7, "Deeply nested reply", "Grace", pid(5)},
		{8, "Another root-level comment", "Hank", nil},
		{9, "Reply to another root-level comment", "Ivy", pid(8)},
		{10, "Nested under Ivy", "Jack", pid(9)},
		{11, "Another reply to Ivy", "Ken", pid(9)},
		{12, "Reply to Charlie", "Liam", pid(3)},
		{13, "Further nesting under Ken", "Mia", pid(11)},
		{14, "Another deeply nested reply", "Nina", pid(13)},
		{15, "Sibling to deeply nested", "Oscar", pid(13)},
		{16, "Independent root-level comment", "Pam", nil},
		{17, "Reply to Pam", "Quincy", pid(16)},
	}
	for _, s := range seeds {
		if _, err := t.AddComment(s.id, s.text, s.author, s.parentID); err != nil {
			log.Printf("Failed to seed comment %d: %v", s.id, err)
		}
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Manual registration to ensure keys match handler expectation
	r.AddFromFilesFuncs("tree/index.html", funcMap, assemble(templatesDir+"/views/tree/index.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
