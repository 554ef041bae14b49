//go:build !no_sqlite && cgo

package db

import (
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/configs"
)

// mattn 驱动不认 _pragma 语法，改写为 _foreign_keys 与 _busy_timeout.
func createSQLiteDialector(dsn string) gorm.Dialector {
	dsn = strings.ReplaceAll(dsn, "_pragma=foreign_keys(1)", "_foreign_keys=1")

	return sqlite.Open(appendDSNParams(dsn,
		"_foreign_keys", "1",
		"_busy_timeout", sqliteBusyTimeoutMS,
	))
}

func init() {
	RegisterDialectorFactory(configs.SQLite, createSQLiteDialector)
}
