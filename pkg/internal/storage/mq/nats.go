package mq

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"

	"github.com/yeisme/genovault/pkg/configs"
)

const (
	natsDrainTimeout   = 30 * time.Second
	natsFlusherTimeout = 10 * time.Second
)

func init() {
	RegisterFactory(configs.MQTypeNATS, natsFactory)
}

// natsConnOptions 连接参数与认证，JWT 优先于 NKey，再其次是用户名密码.
func natsConnOptions(cfg *configs.MQConfig) []nc.Option {
	c := cfg.Common

	opts := []nc.Option{
		nc.Name(c.ClientID),
		nc.MaxReconnects(c.MaxReconnects),
		nc.ReconnectWait(time.Duration(c.ReconnectWait) * time.Second),
		nc.PingInterval(time.Duration(c.PingInterval) * time.Second),
		nc.MaxPingsOutstanding(c.MaxPingsOut),
		nc.ReconnectBufSize(c.BufferSize),
		nc.DrainTimeout(natsDrainTimeout),
		nc.FlusherTimeout(natsFlusherTimeout),
		nc.RetryOnFailedConnect(true),
	}

	switch {
	case cfg.NATS.JWT != "":
		opts = append(opts, nc.UserJWTAndSeed(cfg.NATS.JWT, cfg.NATS.NKey))
	case cfg.NATS.NKey != "":
		opts = append(opts, nc.Nkey(cfg.NATS.NKey, nil))
	case c.User != "":
		opts = append(opts, nc.UserInfo(c.User, c.Password))
	}

	return opts
}

func natsURL(cfg *configs.MQConfig) string {
	if len(cfg.NATS.ClusterURLs) > 0 {
		return strings.Join(cfg.NATS.ClusterURLs, ",")
	}

	return cfg.Common.URL
}

// natsFactory 目录事件走 JetStream 时每个 gv.* 主题自动建流，
// 消息 UUID 用作 Nats-Msg-Id，重复发布的同一事件只落盘一次.
func natsFactory(_ context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	js := nats.JetStreamConfig{Disabled: !cfg.NATS.JetStreamEnabled}
	if cfg.NATS.JetStreamEnabled {
		js.AutoProvision = cfg.NATS.JetStreamAutoProvision
		js.TrackMsgId = cfg.NATS.JetStreamTrackMsgID
		js.AckAsync = cfg.NATS.JetStreamAckAsync
		js.DurablePrefix = cfg.NATS.JetStreamDurablePrefix
	}

	marshaler := &nats.JSONMarshaler{}
	opts := natsConnOptions(cfg)
	url := natsURL(cfg)

	pub, err := nats.NewPublisher(nats.PublisherConfig{
		URL:         url,
		NatsOptions: opts,
		JetStream:   js,
		Marshaler:   marshaler,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	subCfg := nats.SubscriberConfig{
		URL:         url,
		NatsOptions: opts,
		JetStream:   js,
		Unmarshaler: marshaler,
	}

	// 多个消费实例共用队列组，同一事件只投递给其中一个
	if cfg.NATS.LoadBalance {
		subCfg.QueueGroupPrefix = cfg.NATS.JetStreamDurablePrefix
	}

	sub, err := nats.NewSubscriber(subCfg, logger)
	if err != nil {
		_ = pub.Close()
		return nil, nil, err
	}

	logger.Info("nats event bus ready", watermill.LogFields{
		"url":       url,
		"jetstream": cfg.NATS.JetStreamEnabled,
		"prefix":    cfg.NATS.SubjectPrefix,
	})

	return pub, sub, nil
}
