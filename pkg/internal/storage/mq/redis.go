package mq

import (
	"context"
	"errors"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/yeisme/genovault/pkg/configs"
)

const redisSubscriberBuffer = 100

var errSubscriberClosed = errors.New("redis subscriber closed")

// redisFrame Redis pub/sub 上的消息帧，保留 watermill 的 UUID 与元数据（actor、trace_id 等）.
type redisFrame struct {
	UUID     string            `json:"uuid"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Payload  []byte            `json:"payload"`
}

func init() {
	RegisterFactory(configs.MQTypeRedis, redisFactory)
}

func redisFactory(ctx context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	logger.Info("redis event bus ready", watermill.LogFields{"addr": cfg.Redis.Addr})

	// 发布与订阅共用连接池，由订阅方负责关闭
	return &redisPublisher{rdb: rdb}, &redisSubscriber{rdb: rdb, logger: logger, done: make(chan struct{})}, nil
}

type redisPublisher struct {
	rdb *redis.Client
}

func (p *redisPublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		data, err := sonic.Marshal(redisFrame{UUID: msg.UUID, Metadata: msg.Metadata, Payload: msg.Payload})
		if err != nil {
			return err
		}

		if err := p.rdb.Publish(msg.Context(), topic, data).Err(); err != nil {
			return err
		}
	}

	return nil
}

func (p *redisPublisher) Close() error { return nil }

type redisSubscriber struct {
	rdb    *redis.Client
	logger watermill.LoggerAdapter

	mu      sync.Mutex
	pubsubs []*redis.PubSub
	closed  bool
	done    chan struct{}
}

func (s *redisSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errSubscriberClosed
	}

	ps := s.rdb.Subscribe(ctx, topic)
	s.pubsubs = append(s.pubsubs, ps)

	out := make(chan *message.Message, redisSubscriberBuffer)

	go func() {
		defer close(out)

		for {
			raw, err := ps.ReceiveMessage(ctx)
			if err != nil {
				return
			}

			msg := s.decode(topic, raw.Payload)
			if msg == nil {
				continue
			}

			select {
			case out <- msg:
			case <-s.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// decode 解析消息帧；非本服务发布的原始负载按无元数据消息处理.
func (s *redisSubscriber) decode(topic, raw string) *message.Message {
	var f redisFrame
	if err := sonic.UnmarshalString(raw, &f); err != nil || f.UUID == "" {
		s.logger.Debug("redis message without frame", watermill.LogFields{"topic": topic})
		return message.NewMessage(watermill.NewUUID(), []byte(raw))
	}

	msg := message.NewMessage(f.UUID, f.Payload)
	for k, v := range f.Metadata {
		msg.Metadata.Set(k, v)
	}

	return msg
}

func (s *redisSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	close(s.done)

	var err error
	for _, ps := range s.pubsubs {
		err = errors.Join(err, ps.Close())
	}

	return errors.Join(err, s.rdb.Close())
}
