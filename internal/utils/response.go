package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response /api 下所有接口的响应外层
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Count   *int        `json:"count,omitempty"` // 仅列表接口
	Success bool        `json:"success"`
}

// Success 返回单个对象
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// SuccessList 返回列表，nil 输出为 []，并附带条数
func SuccessList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    items,
		Count:   &n,
		Success: true,
	})
}

// Error 返回错误响应，data 固定为 null
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Success: false,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404，message 为空时使用默认文案
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "番剧不存在"
	}
	Error(c, http.StatusNotFound, message)
}

// BadGateway 502，上游无法访问或返回无法解析的内容
func BadGateway(c *gin.Context, message string) {
	if message == "" {
		message = "上游服务不可用"
	}
	Error(c, http.StatusBadGateway, message)
}
