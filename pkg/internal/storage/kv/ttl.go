package kv

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// 没有原生过期的后端（内存、NATS）把值包进带截止时间的信封.
// 截止时间为 0 表示永不过期；未带前缀的值原样返回.
var envelopePrefix = []byte("GVTTL1:")

type envelope struct {
	Value    []byte `json:"v"`
	Deadline int64  `json:"e,omitempty"` // UnixNano
}

// seal ttl<=0 时不包装.
func seal(value []byte, ttl time.Duration, now time.Time) ([]byte, error) {
	if ttl <= 0 {
		return value, nil
	}

	b, err := sonic.Marshal(envelope{Value: value, Deadline: now.Add(ttl).UnixNano()})
	if err != nil {
		return nil, fmt.Errorf("seal kv value: %w", err)
	}

	return append(bytes.Clone(envelopePrefix), b...), nil
}

// open 返回原始值；过期时 expired 为 true.
func open(b []byte, now time.Time) (value []byte, expired bool, err error) {
	rest, ok := bytes.CutPrefix(b, envelopePrefix)
	if !ok {
		return b, false, nil
	}

	var env envelope
	if err := sonic.Unmarshal(rest, &env); err != nil {
		return nil, false, fmt.Errorf("open kv value: %w", err)
	}

	if env.Deadline > 0 && now.UnixNano() >= env.Deadline {
		return nil, true, nil
	}

	return env.Value, false, nil
}
