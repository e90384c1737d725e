package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const (
	sessionVisitorKey = "visitor"
	ctxVisitorKey     = "visitor_id"
)

// Visitor 为每个浏览器分配匿名访客 ID（保存在 cookie session 中）
// 详情页的展开/筛选状态按访客 ID 保存在服务端
// cookie 写入失败时访客每次都会拿到新 ID，无法复用服务端状态
func Visitor(logger hclog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return func(c *gin.Context) {
		session := sessions.Default(c)

		id, _ := session.Get(sessionVisitorKey).(string)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			session.Set(sessionVisitorKey, id)
			if err := session.Save(); err != nil {
				logger.Warn("保存访客 session 失败", "path", c.Request.URL.Path, "error", err)
			}
		}

		c.Set(ctxVisitorKey, id)
		c.Next()
	}
}

// GetVisitorID 从上下文获取访客 ID（未经过 Visitor 中间件返回空串）
func GetVisitorID(c *gin.Context) string {
	return c.GetString(ctxVisitorKey)
}
