package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/middleware"
)

// SchedulerJobs 返回导入与发布通知等后台任务的状态.
//
//	@Summary	后台任务列表
//	@Tags		调度
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/v1/scheduler/jobs [get]
func SchedulerJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusOK, gin.H{"jobs": []any{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": sched.GetJobInfos(), "waiting": sched.JobsWaitingInQueue()})
}

// SchedulerRunJob 立即执行一次指定任务.
//
//	@Summary	立即执行后台任务
//	@Tags		调度
//	@Param		name	path	string	true	"任务名称"
//	@Success	202
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/scheduler/jobs/{name}/run [post]
func SchedulerRunJob(c *gin.Context) {
	name := c.Param("name")

	sched := middleware.GetScheduler(c)
	if sched == nil {
		Fail(c, errs.NotFound("job", name))
		return
	}

	if err := sched.RunNow(name); err != nil {
		Fail(c, errs.NotFound("job", name))
		return
	}

	c.Status(http.StatusAccepted)
}
