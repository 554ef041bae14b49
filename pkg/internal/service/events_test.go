package service_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/genovault/pkg/configs"
	ctxPkg "github.com/yeisme/genovault/pkg/context"
	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/types"
	"github.com/yeisme/genovault/pkg/queue"
)

func eventsOn() configs.EventsConfig {
	return configs.EventsConfig{
		Enabled:  true,
		Study:    configs.StudyEventsConfig{Created: true, Linked: true, Released: true},
		Analysis: configs.AnalysisEventsConfig{Created: true},
	}
}

func next(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()

	select {
	case m := <-ch:
		m.Ack()

		return m
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")

		return nil
	}
}

func TestWritesPublishEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	defer bus.Close()

	created, err := bus.Subscribe(ctx, queue.TopicStudyCreated)
	if err != nil {
		t.Fatal(err)
	}

	linked, err := bus.Subscribe(ctx, queue.TopicStudyLinked)
	if err != nil {
		t.Fatal(err)
	}

	env := catalogtest.New(t, catalogtest.WithEmitter(queue.NewEmitter(bus, eventsOn())))
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	a := env.Study(t, types.StudyCreateRequest{Name: "a", Taxonomy: &tax})

	m := next(t, created)

	env1, err := queue.ParseWatermillMessage[queue.StudyChangedPayload](m)
	if err != nil {
		t.Fatal(err)
	}

	if env1.Payload.Study.ID != a.ID || !env1.Payload.Visible || env1.Header.Producer != "genovault" {
		t.Fatalf("created event = %+v", env1)
	}

	req := types.StudyCreateRequest{
		Name:         "b",
		Taxonomy:     &tax,
		ReleaseDate:  &a.ReleaseDate,
		ChildStudies: []uint{a.ID, 999},
	}

	b, err := env.Catalog.Studies().Create(ctxPkg.WithPrincipal(ctx, "curator@ebi.ac.uk"), &req)
	if err != nil {
		t.Fatal(err)
	}

	next(t, created)

	env2, err := queue.ParseWatermillMessage[queue.StudyLinkedPayload](next(t, linked))
	if err != nil {
		t.Fatal(err)
	}

	if env2.Payload.Study.ID != b.ID || !slices.Equal(env2.Payload.Linked, []uint{a.ID}) || !slices.Equal(env2.Payload.Dropped, []uint{999}) {
		t.Fatalf("linked event = %+v", env2.Payload)
	}

	if env2.Header.Actor != "curator@ebi.ac.uk" {
		t.Fatalf("actor = %q", env2.Header.Actor)
	}
}

func TestDisabledEventsPublishNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	defer bus.Close()

	created, err := bus.Subscribe(ctx, queue.TopicStudyCreated)
	if err != nil {
		t.Fatal(err)
	}

	cfg := eventsOn()
	cfg.Enabled = false

	env := catalogtest.New(t, catalogtest.WithEmitter(queue.NewEmitter(bus, cfg)))
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	env.Study(t, types.StudyCreateRequest{Name: "a", Taxonomy: &tax})

	select {
	case m := <-created:
		t.Fatalf("unexpected event %s", m.UUID)
	case <-time.After(100 * time.Millisecond):
	}
}
