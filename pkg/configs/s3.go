package configs

import (
	"github.com/spf13/viper"
)

// S3Config 存放待导入 ENA 分析 XML 的对象存储（MinIO 或兼容 S3 的服务）.
// 仅在 ingest.s3_prefix 非空时连接.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	// CreateBucket 桶不存在时创建，默认要求桶已存在.
	CreateBucket bool `mapstructure:"create_bucket"`
	// MaxObjectSize 单个 XML 对象的读取上限（字节）.
	MaxObjectSize int64 `mapstructure:"max_object_size" rule:"min=1024"`
}

func (c *S3Config) setDefaults(v *viper.Viper) {
	v.SetDefault("s3.endpoint", "localhost:9000")
	v.SetDefault("s3.access_key_id", "minioadmin")
	v.SetDefault("s3.secret_access_key", "minioadmin")
	v.SetDefault("s3.use_ssl", false)
	v.SetDefault("s3.bucket", "ena-analyses")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.create_bucket", false)
	v.SetDefault("s3.max_object_size", 64<<20)
}
