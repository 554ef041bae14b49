package configs

import (
	"github.com/spf13/viper"
)

// KVType 键值存储类型.
type KVType string

const (
	KVTypeMemory KVType = "memory"
	KVTypeRedis  KVType = "redis"
	KVTypeNATS   KVType = "nats"
)

// KVConfig 键值存储配置，目前用于导入任务的去重记录.
type KVConfig struct {
	Type  KVType        `mapstructure:"type"  rule:"oneof=memory redis nats"`
	Redis RedisKVConfig `mapstructure:"redis"`
	NATS  NATSKVConfig  `mapstructure:"nats"`
}

// RedisKVConfig Redis KV 配置. KeyPrefix 让多个目录实例共用一个 Redis 库.
type RedisKVConfig struct {
	Addr      string `mapstructure:"addr"       rule:"hostname_port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"         rule:"min=0,max=15"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// NATSKVConfig NATS KV 配置.
type NATSKVConfig struct {
	URL      string `mapstructure:"url"      rule:"hostname_port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Bucket   string `mapstructure:"bucket"   rule:"required"`
}

func (c *KVConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("kv.type", KVTypeMemory)

	v.SetDefault("kv.redis.addr", "localhost:6379")
	v.SetDefault("kv.redis.password", "")
	v.SetDefault("kv.redis.db", 0)
	v.SetDefault("kv.redis.key_prefix", "genovault:")

	v.SetDefault("kv.nats.url", "localhost:4222")
	v.SetDefault("kv.nats.user", "")
	v.SetDefault("kv.nats.password", "")
	v.SetDefault("kv.nats.bucket", "genovault-kv")
}
