package jobs

// 任务名称，也是 /scheduler/jobs/:name/run 中使用的名字.
const (
	JobIngest          = "ingest.ena"
	JobReleaseAnnounce = "study.release_announce"
)
