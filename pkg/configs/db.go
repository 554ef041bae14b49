package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DBType 数据库类型，同一方言可有多个别名.
type DBType string

const (
	PostgreSQL DBType = "postgresql"
	Postgres   DBType = "postgre"
	Pg         DBType = "pg"

	MySQL   DBType = "mysql"
	MariaDB DBType = "mariadb"

	SQLite DBType = "sqlite"
)

// DBConfig 目录数据库. 默认 SQLite 单文件，生产环境使用 PostgreSQL 或 MySQL.
type DBConfig struct {
	Type     DBType `mapstructure:"type"     rule:"oneof=postgresql postgre pg mysql mariadb sqlite"`
	Host     string `mapstructure:"host"     rule:"required_unless=Type sqlite"`
	Port     int    `mapstructure:"port"     rule:"min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database" rule:"required"`
	SSLMode  string `mapstructure:"sslmode"`
	// Path SQLite 数据库文件，为空时使用 <database>.db.
	Path string `mapstructure:"path"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"    rule:"min=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    rule:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Family 方言族：postgres、mysql 或 sqlite，未知类型返回空串.
func (c *DBConfig) Family() string {
	switch c.Type {
	case PostgreSQL, Postgres, Pg:
		return "postgres"
	case MySQL, MariaDB:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return ""
	}
}

// GetDSN 生成连接串. 会话时区统一为 UTC，发布日期按 UTC 日历日比较.
func (c *DBConfig) GetDSN() string {
	switch c.Family() {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Database)
	case "sqlite":
		path := c.Path
		if path == "" {
			path = c.Database + ".db"
		}

		if !strings.HasPrefix(path, "file:") {
			path = "file:" + path
		}

		return path + "?_pragma=foreign_keys(1)"
	default:
		return ""
	}
}

func (c *DBConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("db.type", SQLite)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.database", "genovault")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "")
	v.SetDefault("db.max_open_conns", 0)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
}
