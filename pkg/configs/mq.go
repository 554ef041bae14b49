package configs

import (
	"github.com/spf13/viper"
)

// MQType 事件总线后端.
type MQType string

const (
	MQTypeNATS  MQType = "nats"
	MQTypeRedis MQType = "redis"
)

// MQConfig 目录事件发布使用的消息队列，仅在 events.enabled 时连接.
type MQConfig struct {
	Type   MQType         `mapstructure:"type"   rule:"oneof=nats redis"`
	Common MQCommonConfig `mapstructure:"common"`
	NATS   MQNATSConfig   `mapstructure:"nats"`
	Redis  MQRedisConfig  `mapstructure:"redis"`
}

// MQCommonConfig 连接参数，时间单位为秒.
type MQCommonConfig struct {
	URL           string `mapstructure:"url"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	ClientID      string `mapstructure:"client_id"`
	MaxReconnects int    `mapstructure:"max_reconnects" rule:"min=0,max=100"`
	ReconnectWait int    `mapstructure:"reconnect_wait" rule:"min=1,max=300"`
	MaxPingsOut   int    `mapstructure:"max_pings_out"  rule:"min=1,max=10"`
	PingInterval  int    `mapstructure:"ping_interval"  rule:"min=1,max=300"`
	// BufferSize 重连期间的发布缓冲（字节）.
	BufferSize    int  `mapstructure:"buffer_size"    rule:"min=1024,max=1048576"`
	EnableMetrics bool `mapstructure:"enable_metrics"`
}

// MQNATSConfig NATS 与 JetStream.
// SubjectPrefix 加在 gv.* 主题前，多套目录可共用一个集群.
type MQNATSConfig struct {
	JetStreamEnabled       bool     `mapstructure:"jetstream_enabled"`
	SubjectPrefix          string   `mapstructure:"subject_prefix"`
	JetStreamAutoProvision bool     `mapstructure:"jetstream_auto_provision"`
	JetStreamTrackMsgID    bool     `mapstructure:"jetstream_track_msg_id"`
	JetStreamAckAsync      bool     `mapstructure:"jetstream_ack_async"`
	JetStreamDurablePrefix string   `mapstructure:"jetstream_durable_prefix"`
	JWT                    string   `mapstructure:"jwt"`
	NKey                   string   `mapstructure:"nkey"`
	ClusterURLs            []string `mapstructure:"cluster_urls"`
	// LoadBalance 订阅方加入以 durable 前缀命名的队列组.
	LoadBalance bool `mapstructure:"load_balance"`
}

// MQRedisConfig Redis pub/sub.
type MQRedisConfig struct {
	Addr     string `mapstructure:"addr"     rule:"hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       rule:"min=0,max=15"`
}

func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", MQTypeNATS)

	v.SetDefault("mq.common.url", "nats://localhost:4222")
	v.SetDefault("mq.common.client_id", "genovault")
	v.SetDefault("mq.common.max_reconnects", 5)
	v.SetDefault("mq.common.reconnect_wait", 5)
	v.SetDefault("mq.common.max_pings_out", 3)
	v.SetDefault("mq.common.ping_interval", 20)
	v.SetDefault("mq.common.buffer_size", 32768)
	v.SetDefault("mq.common.enable_metrics", true)

	v.SetDefault("mq.nats.jetstream_enabled", true)
	v.SetDefault("mq.nats.subject_prefix", "")
	v.SetDefault("mq.nats.jetstream_auto_provision", true)
	v.SetDefault("mq.nats.jetstream_track_msg_id", true)
	v.SetDefault("mq.nats.jetstream_ack_async", false)
	v.SetDefault("mq.nats.jetstream_durable_prefix", "genovault")
	v.SetDefault("mq.nats.cluster_urls", []string{})
	v.SetDefault("mq.nats.load_balance", true)

	v.SetDefault("mq.redis.addr", "localhost:6379")
	v.SetDefault("mq.redis.db", 0)
}
