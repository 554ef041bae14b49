//go:build !no_postgres

package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/configs"
)

// 使用扩展协议以便复用预编译语句；经 pgbouncer 事务池时需改为简单协议.
func createPostgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: false})
}

func init() {
	for _, t := range []configs.DBType{configs.PostgreSQL, configs.Postgres, configs.Pg} {
		RegisterDialectorFactory(t, createPostgresDialector)
	}
}
