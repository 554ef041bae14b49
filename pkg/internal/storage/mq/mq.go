// Package mq 提供基于 Watermill 库的统一消息队列操作接口。
// 支持发布/订阅模式，并通过工厂模式抽象不同的 MQ 实现。
//
// 支持的 MQ 类型：
//   - NATS（支持 JetStream）
//   - Redis（Pub/Sub）
//
// 目录事件（gv.*）通过 Client.Publisher() 交给 queue.Emitter 发布.
//
// 使用示例：
//
//	client, err := mq.New(ctx, &configs.GetConfig().MQ)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ch, err := client.Subscribe(ctx, queue.TopicStudyLinked)
package mq

import (
	"context"
	"errors"
	"fmt"
	"sort"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/genovault/pkg/configs"
	nlog "github.com/yeisme/genovault/pkg/log"
	nmetrics "github.com/yeisme/genovault/pkg/metrics"
)

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var (
	factories = map[configs.MQType]Factory{}
)

// ErrNotInitialized 客户端未初始化.
var ErrNotInitialized = errors.New("mq not initialized")

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// GetRegisteredMQTypes 返回已注册的 MQ 类型，按名称排序.
func GetRegisteredMQTypes() []configs.MQType {
	out := make([]configs.MQType, 0, len(factories))
	for t := range factories {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	typ        configs.MQType
	publisher  message.Publisher
	subscriber message.Subscriber
}

// NewLogger 返回桥接到全局 zerolog 的 watermill 日志器.
func NewLogger() watermill.LoggerAdapter {
	return newLoggerAdapter(nlog.Logger())
}

// NewFromPubSub 使用现成的 Publisher/Subscriber 构造客户端，主要用于测试（gochannel）.
func NewFromPubSub(typ configs.MQType, pub message.Publisher, sub message.Subscriber) *Client {
	return &Client{typ: typ, publisher: pub, subscriber: sub}
}

// New 根据配置创建消息队列客户端.
func New(ctx context.Context, cfg *configs.MQConfig) (*Client, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mq type: %s", cfg.Type)
	}

	logger := NewLogger()

	pub, sub, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init mq (%s): %w", cfg.Type, err)
	}

	pub, sub = WithTopicPrefix(cfg.NATS.SubjectPrefix, pub, sub)

	if cfg.Common.EnableMetrics {
		// 复用应用的 Prometheus 注册表，由 /metrics 统一导出
		builder := metrics.NewPrometheusMetricsBuilder(nmetrics.GetRegistry(), "genovault", "mq")

		if pub, err = builder.DecoratePublisher(pub); err != nil {
			return nil, fmt.Errorf("decorate publisher with metrics: %w", err)
		}

		if sub, err = builder.DecorateSubscriber(sub); err != nil {
			return nil, fmt.Errorf("decorate subscriber with metrics: %w", err)
		}
	}

	nlog.Logger().Info().Str("type", string(cfg.Type)).Msg("MQ 客户端已初始化")

	return &Client{typ: cfg.Type, publisher: pub, subscriber: sub}, nil
}

// Type 返回 MQ 类型.
func (c *Client) Type() configs.MQType { return c.typ }

// Publisher 返回底层 Publisher，nil 客户端返回 nil.
func (c *Client) Publisher() message.Publisher {
	if c == nil {
		return nil
	}

	return c.publisher
}

// Publish 便捷发布.
func (c *Client) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return ErrNotInitialized
	}

	return c.publisher.Publish(topic, msgs...)
}

// Subscribe 便捷订阅.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, ErrNotInitialized
	}

	return c.subscriber.Subscribe(ctx, topic)
}

// HealthCheck 检查客户端是否可用.
func (c *Client) HealthCheck(_ context.Context) error {
	if c == nil || c.publisher == nil || c.subscriber == nil {
		return ErrNotInitialized
	}

	return nil
}

// Close 关闭资源.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	var err error

	if c.publisher != nil {
		err = errors.Join(err, c.publisher.Close())
	}

	if c.subscriber != nil {
		err = errors.Join(err, c.subscriber.Close())
	}

	return err
}
