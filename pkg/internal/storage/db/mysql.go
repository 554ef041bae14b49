//go:build !no_mysql

package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/configs"
)

// 目录中的名称与 URL 上限都是 255，字符串列默认按此长度建表.
func createMySQLDialector(dsn string) gorm.Dialector {
	return mysql.New(mysql.Config{
		DSN:                       dsn,
		DefaultStringSize:         255,
		DontSupportRenameIndex:    true,
		SkipInitializeWithVersion: false,
	})
}

func init() {
	for _, t := range []configs.DBType{configs.MySQL, configs.MariaDB} {
		RegisterDialectorFactory(t, createMySQLDialector)
	}
}
