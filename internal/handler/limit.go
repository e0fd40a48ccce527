package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// bodyLimit 拒绝超过上限的请求体，超限统一返回 413。
func bodyLimit(maxMB int64) gin.HandlerFunc {
	maxBytes := maxMB * 1024 * 1024
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			abortTooLarge(c, maxMB)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func abortTooLarge(c *gin.Context, maxMB int64) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorResponse{
		Error: fmt.Sprintf("File too large. Maximum size is %dMB.", maxMB),
	})
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	// multipart 解析有时只保留错误文本。
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
