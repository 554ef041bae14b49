package configs

import "github.com/spf13/viper"

const (
	DefaultPageSize     = 20  // 列表默认分页大小
	DefaultMaxPageSize  = 200 // 单页最大条数
	DefaultWriteRetries = 3   // 写事务冲突时的最大尝试次数
)

// CatalogConfig 元数据目录的查询与写入参数.
type CatalogConfig struct {
	PageSize     int `mapstructure:"page_size"     rule:"min=1"`
	MaxPageSize  int `mapstructure:"max_page_size" rule:"min=1"`
	WriteRetries int `mapstructure:"write_retries" rule:"min=1,max=10"`
}

func (c *CatalogConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.page_size", DefaultPageSize)
	v.SetDefault("catalog.max_page_size", DefaultMaxPageSize)
	v.SetDefault("catalog.write_retries", DefaultWriteRetries)
}
