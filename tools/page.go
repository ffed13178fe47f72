package tools

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page 分页参数
type Page struct {
	Page     int
	PageSize int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// GetPage 从 query 读取 page 与 page_size，可变参数依次是 defaultPageSize, maxPageSize
// 非法值回退到默认值
func GetPage(c *gin.Context, defaults ...int) Page {
	defaultPageSize, maxPageSize := 10, 100
	if len(defaults) > 0 && defaults[0] > 0 {
		defaultPageSize = defaults[0]
	}
	if len(defaults) > 1 && defaults[1] > 0 {
		maxPageSize = defaults[1]
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", c.Query("limit")))
	if err != nil || size < 1 {
		size = defaultPageSize
	} else if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Page: page, PageSize: size}
}

// PageResult 列表接口统一的分页返回
func PageResult(key string, list any, total int64, p Page) gin.H {
	return gin.H{
		key:           list,
		"total":       total,
		"page":        p.Page,
		"page_size":   p.PageSize,
		"total_pages": (total + int64(p.PageSize) - 1) / int64(p.PageSize),
	}
}

// ParamID 读取路径中的数字 ID
func ParamID(c *gin.Context, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
