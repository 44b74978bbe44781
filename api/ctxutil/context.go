// Package ctxutil 控制器共用的小工具
package ctxutil

import (
	"strconv"

	"petcare/domain/shared"

	"github.com/gin-gonic/gin"
)

// PageQuery 读取 ?page=&page_size=，非法值按默认处理
func PageQuery(c *gin.Context) shared.PageQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return shared.NewPageQuery(page, size)
}

// QueryBool 缺省时返回 def
func QueryBool(c *gin.Context, key string, def bool) bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
