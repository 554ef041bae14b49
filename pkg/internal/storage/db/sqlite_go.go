//go:build !no_sqlite && !cgo

package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/configs"
)

// 纯 Go 驱动，pragma 通过 _pragma=name(value) 传入.
func createSQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(appendDSNParams(dsn,
		"_pragma", "foreign_keys(1)",
		"_pragma", "busy_timeout("+sqliteBusyTimeoutMS+")",
	))
}

func init() {
	RegisterDialectorFactory(configs.SQLite, createSQLiteDialector)
}
