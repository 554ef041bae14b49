// Package queue 封装目录事件的发布，下游系统（索引、通知、归档）通过订阅获得变更.
//
// 概览
//   - 统一的消息封装：Message[Payload] = Header + Payload
//   - 主题常量见 topics.go，负载结构体见 payloads.go
//   - 默认 JSON 编解码（bytedance/sonic）
//   - 事件在事务提交后发布，发布失败只记录日志，不影响写入结果
//
// 消息信封（Envelope）JSON 结构
//
//	{
//	  "header": {
//	    "topic": "gv.study.linked",
//	    "trace_id": "optional-trace-id",
//	    "producer": "genovault",
//	    "occurred_at": "2025-01-02T03:04:05.123456Z",
//	    "version": "v1"
//	  },
//	  "payload": { "study": {"id": 1}, "linked": [2, 3] }
//	}
//
// 订阅示例
//
//	ch, _ := client.Subscribe(ctx, queue.TopicStudyLinked)
//	for m := range ch {
//	    env, _ := queue.ParseWatermillMessage[queue.StudyLinkedPayload](m)
//	    // 使用 env.Header / env.Payload ...
//	    m.Ack()
//	}
package queue

import (
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
)

const (
	PayloadVersionV1 string = "v1"
)

// HeaderOption 调整事件头.
type HeaderOption func(*EventHeader)

// NewEventHeader 便捷创建事件头.
func NewEventHeader(topic string, opts ...HeaderOption) EventHeader {
	hdr := EventHeader{
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Version:    PayloadVersionV1,
	}
	for _, opt := range opts {
		opt(&hdr)
	}

	return hdr
}

// WithTraceID 设置 TraceID.
func WithTraceID(id string) HeaderOption { return func(h *EventHeader) { h.TraceID = id } }

// WithOccurredAt 覆盖事件时间.
func WithOccurredAt(t time.Time) HeaderOption {
	return func(h *EventHeader) { h.OccurredAt = t.UTC() }
}

// WithActor 记录触发事件的调用者.
func WithActor(a string) HeaderOption { return func(h *EventHeader) { h.Actor = a } }

// WithProducer 设置 Producer.
func WithProducer(p string) HeaderOption { return func(h *EventHeader) { h.Producer = p } }

// Encode 将消息封装为 JSON 字节切片.
func Encode[T any](msg Message[T]) ([]byte, error) { return sonic.Marshal(msg) }

// Decode 从 JSON 字节解码为消息.
func Decode[T any](b []byte) (Message[T], error) {
	var m Message[T]

	err := sonic.Unmarshal(b, &m)

	return m, err
}

// NewWatermillMessage 构造一个 watermill 消息，设置 ID 与元数据.
func NewWatermillMessage[T any](topic string, payload T, opts ...HeaderOption) (*message.Message, error) {
	header := NewEventHeader(topic, opts...)
	env := Message[T]{Header: header, Payload: payload}

	data, err := Encode(env)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)

	if header.TraceID != "" {
		msg.Metadata.Set("trace_id", header.TraceID)
	}

	if header.Producer != "" {
		msg.Metadata.Set("producer", header.Producer)
	}

	if header.Actor != "" {
		msg.Metadata.Set("actor", header.Actor)
	}

	msg.Metadata.Set("occurred_at", header.OccurredAt.Format(time.RFC3339Nano))

	if header.Version != "" {
		msg.Metadata.Set("version", header.Version)
	}

	return msg, nil
}

// ParseWatermillMessage 解出泛型负载.
func ParseWatermillMessage[T any](msg *message.Message) (Message[T], error) {
	return Decode[T](msg.Payload)
}
