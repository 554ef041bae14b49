// Package queue 定义消息主题常量，供发布/订阅使用.
package queue

// 主题命名规范：gv.<域>.<动作>，尽量稳定且向后兼容.
// 域：study(研究)、analysis(分析)、ingest(导入).

const (
	// 研究领域.
	TopicStudyCreated  = "gv.study.created"  // 研究已创建
	TopicStudyUpdated  = "gv.study.updated"  // 研究字段被更新
	TopicStudyLinked   = "gv.study.linked"   // 研究的关联集合被替换
	TopicStudyReleased = "gv.study.released" // 研究到达发布日期，首次对外可见

	// 分析领域.
	TopicAnalysisCreated = "gv.analysis.created" // 分析已创建

	// 导入领域.
	TopicIngestCompleted = "gv.ingest.completed" // 一批 ENA 文档导入完成
)

// 主题分组，用于批量订阅或命令行展示.
var (
	StudyTopics    = []string{TopicStudyCreated, TopicStudyUpdated, TopicStudyLinked, TopicStudyReleased}
	AnalysisTopics = []string{TopicAnalysisCreated}
	IngestTopics   = []string{TopicIngestCompleted}
)

// AllTopics 返回全部主题.
func AllTopics() []string {
	out := make([]string, 0, len(StudyTopics)+len(AnalysisTopics)+len(IngestTopics))
	out = append(out, StudyTopics...)
	out = append(out, AnalysisTopics...)

	return append(out, IngestTopics...)
}
