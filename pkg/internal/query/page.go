package query

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/errs"
)

// Page 分页参数，Number 从 0 开始.
type Page struct {
	Number int
	Size   int
	// Sort 已校验的排序子句，如 "name DESC".
	Sort string
}

// PageInfo 分页元数据.
type PageInfo struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// Limits 分页上下限.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// ParsePage 解析 page、size、sort 参数，sortable 为 JSON 字段到列名的白名单.
func ParsePage(page, size, sort string, lim Limits, sortable map[string]string) (Page, error) {
	p := Page{Size: lim.DefaultSize}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return Page{}, errs.Field("page", "must be greater than or equal to 0")
		}

		p.Number = n
	}

	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 1 {
			return Page{}, errs.Field("size", "must be greater than or equal to 1")
		}

		p.Size = min(n, lim.MaxSize)
	}

	// 偏移量 Number*Size 不能溢出
	if p.Number > math.MaxInt/max(p.Size, 1) {
		return Page{}, errs.Field("page", "page number is too large")
	}

	if sort != "" {
		field, dir, _ := strings.Cut(sort, ",")

		col, ok := sortable[field]
		if !ok {
			return Page{}, errs.Field("sort", "unsupported sort property "+field)
		}

		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
			p.Sort = col + " ASC"
		case "desc":
			p.Sort = col + " DESC"
		default:
			return Page{}, errs.Field("sort", "sort direction must be asc or desc")
		}
	}

	return p, nil
}

// Apply 追加 ORDER BY、LIMIT、OFFSET，未指定排序时按 fallback 保证稳定顺序.
func (p Page) Apply(fallback string) Filter {
	return func(db *gorm.DB) *gorm.DB {
		if p.Sort != "" {
			db = db.Order(p.Sort)
		}

		if fallback != "" {
			db = db.Order(fallback)
		}

		return db.Limit(p.Size).Offset(p.Number * p.Size)
	}
}

// Info 根据总数生成分页元数据.
func (p Page) Info(total int64) PageInfo {
	pages := 0
	if p.Size > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}

	return PageInfo{Size: p.Size, TotalElements: total, TotalPages: pages, Number: p.Number}
}
