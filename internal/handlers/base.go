package handlers

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like the flash message
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if _, ok := obj["Flash"]; !ok {
		obj["Flash"] = takeFlash(c)
	}
	if _, ok := obj["Title"]; !ok {
		obj["Title"] = "评论树"
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// setFlash 写入一条一次性提示，下个页面渲染后即消失
func setFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		log.Printf("保存 flash 失败: %v", err)
	}
}

// takeFlash 取出并清掉 flash
func takeFlash(c *gin.Context) string {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	if err := session.Save(); err != nil {
		log.Printf("清除 flash 失败: %v", err)
	}
	if msg, ok := flashes[0].(string); ok {
		return msg
	}
	return ""
}
