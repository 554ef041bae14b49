package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID.
	TraceID string `json:"trace_id,omitempty"`
	// Actor 触发写操作的调用者邮箱，后台任务为空.
	Actor string `json:"actor,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// StudyRef 事件中引用研究的方式.
type StudyRef struct {
	ID        uint   `json:"id"`
	Accession string `json:"accession,omitempty"`
	Version   int    `json:"version,omitempty"`
}

// StudyChangedPayload 研究创建或更新.
type StudyChangedPayload struct {
	Study       StudyRef `json:"study"`
	Name        string   `json:"name"`
	ReleaseDate string   `json:"release_date"`
	Visible     bool     `json:"visible"`
}

// StudyLinkedPayload 研究的关联集合被替换.
type StudyLinkedPayload struct {
	Study   StudyRef `json:"study"`
	Linked  []uint   `json:"linked"`
	Dropped []uint   `json:"dropped,omitempty"`
}

// StudyReleasedPayload 研究在 ReleaseDate 当天变为可见.
type StudyReleasedPayload struct {
	Study       StudyRef `json:"study"`
	ReleaseDate string   `json:"release_date"`
}

// AnalysisCreatedPayload 分析已创建.
type AnalysisCreatedPayload struct {
	ID                 uint   `json:"id"`
	Accession          string `json:"accession,omitempty"`
	Version            int    `json:"version,omitempty"`
	Study              uint   `json:"study"`
	ReferenceSequences []uint `json:"reference_sequences"`
}

// IngestCompletedPayload 一批导入的统计.
type IngestCompletedPayload struct {
	BatchID   string `json:"batch_id"`
	Source    string `json:"source"`
	Documents int    `json:"documents"`
	Skipped   int    `json:"skipped"`
	Files     int    `json:"files"`
	Attached  int    `json:"attached"`
	Failed    int    `json:"failed"`
}
