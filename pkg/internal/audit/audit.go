// Package audit 提供 GORM 审计插件：创建时写入 CreatedDate 与 LastModifiedDate，
// 更新时只刷新 LastModifiedDate 并忽略任何传入的 CreatedDate.
package audit

import (
	"reflect"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	createdField  = "CreatedDate"
	modifiedField = "LastModifiedDate"
	createdColumn = "created_date"
)

// Plugin 审计插件.
type Plugin struct {
	now func() time.Time
}

// New 创建插件，now 为 nil 时使用 time.Now.
func New(now func() time.Time) *Plugin {
	if now == nil {
		now = time.Now
	}

	return &Plugin{now: now}
}

// Name 实现 gorm.Plugin.
func (p *Plugin) Name() string {
	return "genovault:audit"
}

// Initialize 实现 gorm.Plugin.
func (p *Plugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("audit:stamp_create", p.stampCreate); err != nil {
		return err
	}

	return db.Callback().Update().Before("gorm:update").Register("audit:stamp_update", p.stampUpdate)
}

func (p *Plugin) stampCreate(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	created := db.Statement.Schema.LookUpField(createdField)
	modified := db.Statement.Schema.LookUpField(modifiedField)

	if created == nil && modified == nil {
		return
	}

	now := p.now().UTC()
	ctx := db.Statement.Context

	set := func(rv reflect.Value) {
		for _, f := range []*schema.Field{created, modified} {
			if f == nil {
				continue
			}

			if err := f.Set(ctx, rv, now); err != nil {
				_ = db.AddError(err)
			}
		}
	}

	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			set(reflect.Indirect(rv.Index(i)))
		}
	case reflect.Struct:
		set(rv)
	}
}

func (p *Plugin) stampUpdate(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	if db.Statement.Schema.LookUpField(createdField) != nil {
		db.Statement.Omits = append(db.Statement.Omits, createdColumn)
	}

	if db.Statement.Schema.LookUpField(modifiedField) != nil {
		db.Statement.SetColumn(modifiedField, p.now().UTC(), true)
	}
}
