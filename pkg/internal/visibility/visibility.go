// Package visibility 实现研究的可见性规则：未弃用且发布日期不晚于今天.
// 没有发布日期概念的实体总是可见.
package visibility

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/model"
)

// Clock 当前时间来源.
type Clock func() time.Time

// Filter 可见性过滤器，所有读路径共用同一个实例.
type Filter struct {
	now Clock
}

// New 创建过滤器，now 为 nil 时使用 time.Now.
func New(now Clock) *Filter {
	if now == nil {
		now = time.Now
	}

	return &Filter{now: now}
}

// Now 返回过滤器使用的当前时间.
func (f *Filter) Now() time.Time {
	return f.now()
}

// IsVisible 判断实体是否可见，releaseDate 为零值时视为没有发布日期.
func IsVisible(deprecated bool, releaseDate model.Date, now time.Time) bool {
	if deprecated {
		return false
	}

	if releaseDate.IsZero() {
		return true
	}

	return !releaseDate.After(model.NewDate(now))
}

// Study 判断单个研究是否可见.
func (f *Filter) Study(s *model.Study) bool {
	return s != nil && IsVisible(s.Deprecated, s.ReleaseDate, f.now())
}

// Studies 保序过滤研究列表.
func (f *Filter) Studies(in []model.Study) []model.Study {
	now := f.now()
	out := make([]model.Study, 0, len(in))

	for _, s := range in {
		if IsVisible(s.Deprecated, s.ReleaseDate, now) {
			out = append(out, s)
		}
	}

	return out
}

// Scope 作用于 studies 表的查询条件，只追加 WHERE，不改变排序.
func (f *Filter) Scope(db *gorm.DB) *gorm.DB {
	return f.ScopeFor("studies")(db)
}

// ScopeFor 在联表查询中按给定表名或别名过滤.
func (f *Filter) ScopeFor(table string) func(*gorm.DB) *gorm.DB {
	today := model.NewDate(f.now())

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".deprecated = ? AND "+table+".release_date <= ?", false, today)
	}
}
