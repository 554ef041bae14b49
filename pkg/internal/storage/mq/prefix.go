package mq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// WithTopicPrefix 为发布与订阅的主题统一加前缀，如 "staging" + "gv.study.created"
// 变为 "staging.gv.study.created"，多套目录可共用一个集群. prefix 为空时原样返回.
func WithTopicPrefix(prefix string, pub message.Publisher, sub message.Subscriber) (message.Publisher, message.Subscriber) {
	if prefix == "" {
		return pub, sub
	}

	return prefixedPublisher{Publisher: pub, prefix: prefix}, prefixedSubscriber{Subscriber: sub, prefix: prefix}
}

type prefixedPublisher struct {
	message.Publisher
	prefix string
}

func (p prefixedPublisher) Publish(topic string, msgs ...*message.Message) error {
	return p.Publisher.Publish(p.prefix+"."+topic, msgs...)
}

type prefixedSubscriber struct {
	message.Subscriber
	prefix string
}

func (s prefixedSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return s.Subscriber.Subscribe(ctx, s.prefix+"."+topic)
}
