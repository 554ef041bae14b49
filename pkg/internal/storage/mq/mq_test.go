package mq_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/storage/mq"
	"github.com/yeisme/genovault/pkg/queue"
)

func TestTopicPrefix(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 4}, watermill.NopLogger{})
	defer bus.Close()

	pub, sub := mq.WithTopicPrefix("staging", bus, bus)
	client := mq.NewFromPubSub(configs.MQTypeNATS, pub, sub)

	raw, err := bus.Subscribe(ctx, "staging."+queue.TopicStudyCreated)
	if err != nil {
		t.Fatal(err)
	}

	viaClient, err := client.Subscribe(ctx, queue.TopicStudyCreated)
	if err != nil {
		t.Fatal(err)
	}

	if err := client.Publish(ctx, queue.TopicStudyCreated, message.NewMessage("m1", []byte("{}"))); err != nil {
		t.Fatal(err)
	}

	for _, ch := range []<-chan *message.Message{raw, viaClient} {
		select {
		case m := <-ch:
			if m.UUID != "m1" {
				t.Fatalf("uuid = %s", m.UUID)
			}

			m.Ack()
		case <-ctx.Done():
			t.Fatal("message not delivered on prefixed topic")
		}
	}
}

func TestEmptyPrefixIsIdentity(t *testing.T) {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	pub, sub := mq.WithTopicPrefix("", bus, bus)
	if pub != message.Publisher(bus) || sub != message.Subscriber(bus) {
		t.Fatal("empty prefix must not wrap")
	}
}

func TestNilClient(t *testing.T) {
	var c *mq.Client

	if c.Publisher() != nil {
		t.Fatal("nil client publisher")
	}

	if err := c.HealthCheck(context.Background()); err != mq.ErrNotInitialized {
		t.Fatalf("health = %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestUnsupportedType(t *testing.T) {
	if _, err := mq.New(context.Background(), &configs.MQConfig{Type: "kafka"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	types := mq.GetRegisteredMQTypes()
	if len(types) != 2 || types[0] != configs.MQTypeNATS || types[1] != configs.MQTypeRedis {
		t.Fatalf("registered = %v", types)
	}
}
