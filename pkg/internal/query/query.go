// Package query 提供可组合的查询谓词、分页与排序.
// 每个 Filter 只追加条件，组合顺序不影响结果.
package query

import (
	"strings"

	"gorm.io/gorm"
)

// Filter 一个查询谓词.
type Filter func(*gorm.DB) *gorm.DB

// All 以 AND 组合多个谓词，nil 谓词被忽略.
func All(filters ...Filter) Filter {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range filters {
			if f != nil {
				db = f(db)
			}
		}

		return db
	}
}

// Scopes 转为 gorm 的 scope 列表.
func Scopes(filters ...Filter) []func(*gorm.DB) *gorm.DB {
	out := make([]func(*gorm.DB) *gorm.DB, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			out = append(out, f)
		}
	}

	return out
}

// Eq 列等于给定值.
func Eq(column string, value any) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// In 列属于集合，空集合匹配不到任何行.
func In[T any](column string, values []T) Filter {
	return func(db *gorm.DB) *gorm.DB {
		if len(values) == 0 {
			return db.Where("1 = 0")
		}

		return db.Where(column+" IN ?", values)
	}
}

// IEq 忽略大小写的相等比较.
func IEq(column, value string) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") = ?", strings.ToLower(value))
	}
}

// IContains 忽略大小写的子串匹配，columns 之间为 OR.
func IContains(value string, columns ...string) Filter {
	pattern := "%" + escapeLike(strings.ToLower(value)) + "%"

	return func(db *gorm.DB) *gorm.DB {
		conds := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))

		for _, c := range columns {
			conds = append(conds, "LOWER("+c+") LIKE ? ESCAPE '!'")
			args = append(args, pattern)
		}

		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Contains 区分大小写的子串匹配.
func Contains(column, value string) Filter {
	pattern := "%" + escapeLike(value) + "%"

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" LIKE ? ESCAPE '!'", pattern)
	}
}

// Range 闭区间，from/to 为 nil 表示不限.
func Range(column string, from, to any) Filter {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", from)
		}

		if to != nil {
			db = db.Where(column+" <= ?", to)
		}

		return db
	}
}

// Exists 要求子查询存在匹配行，sub 应引用外层表.
func Exists(sub *gorm.DB) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (?)", sub)
	}
}

// escapeLike 使用 '!' 作为转义符，各方言的字符串字面量都不会改写它.
func escapeLike(s string) string {
	r := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

	return r.Replace(s)
}
