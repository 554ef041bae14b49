package queue

import (
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/genovault/pkg/configs"
)

// Emitter 按事件开关发布目录事件；publisher 为 nil 时所有发布都是空操作.
type Emitter struct {
	pub      message.Publisher
	cfg      configs.EventsConfig
	producer string
}

// NewEmitter 创建发布器.
func NewEmitter(pub message.Publisher, cfg configs.EventsConfig) *Emitter {
	return &Emitter{pub: pub, cfg: cfg, producer: "genovault"}
}

func (e *Emitter) enabled(topicOn bool) bool {
	return e != nil && e.pub != nil && e.cfg.Enabled && topicOn
}

// StudyCreated 发布 gv.study.created.
func (e *Emitter) StudyCreated(p StudyChangedPayload, opts ...HeaderOption) error {
	if !e.enabled(e.cfg.Study.Created) {
		return nil
	}

	return publish(e.pub, TopicStudyCreated, p, e.withProducer(opts)...)
}

// StudyUpdated 发布 gv.study.updated.
func (e *Emitter) StudyUpdated(p StudyChangedPayload, opts ...HeaderOption) error {
	if !e.enabled(e.cfg.Study.Updated) {
		return nil
	}

	return publish(e.pub, TopicStudyUpdated, p, e.withProducer(opts)...)
}

// StudyLinked 发布 gv.study.linked.
func (e *Emitter) StudyLinked(p StudyLinkedPayload, opts ...HeaderOption) error {
	if !e.enabled(e.cfg.Study.Linked) {
		return nil
	}

	return publish(e.pub, TopicStudyLinked, p, e.withProducer(opts)...)
}

// StudyReleased 发布 gv.study.released.
func (e *Emitter) StudyReleased(p StudyReleasedPayload, opts ...HeaderOption) error {
	if !e.enabled(e.cfg.Study.Released) {
		return nil
	}

	return publish(e.pub, TopicStudyReleased, p, e.withProducer(opts)...)
}

// AnalysisCreated 发布 gv.analysis.created.
func (e *Emitter) AnalysisCreated(p AnalysisCreatedPayload, opts ...HeaderOption) error {
	if !e.enabled(e.cfg.Analysis.Created) {
		return nil
	}

	return publish(e.pub, TopicAnalysisCreated, p, e.withProducer(opts)...)
}

// IngestCompleted 发布 gv.ingest.completed.
func (e *Emitter) IngestCompleted(p IngestCompletedPayload, opts ...HeaderOption) error {
	if !e.enabled(e.cfg.Ingest.Completed) {
		return nil
	}

	return publish(e.pub, TopicIngestCompleted, p, e.withProducer(opts)...)
}

func (e *Emitter) withProducer(opts []HeaderOption) []HeaderOption {
	return append([]HeaderOption{WithProducer(e.producer)}, opts...)
}

func publish[T any](pub message.Publisher, topic string, payload T, opts ...HeaderOption) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}
