// Package scheduler 基于 gocron/v2 运行后台任务，并记录每个任务的运行状态.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/genovault/pkg/log"
)

// JobStatus 任务状态.
type JobStatus string

const (
	StatusScheduled JobStatus = "scheduled"
	StatusRunning   JobStatus = "running"
	StatusError     JobStatus = "error"
)

// JobInfo 任务状态快照.
type JobInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CronExpr    string    `json:"cron_expr"`
	NextRun     time.Time `json:"next_run"`
	LastRun     time.Time `json:"last_run"`
	LastSuccess time.Time `json:"last_success,omitzero"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Task 任务函数，返回的错误记录在任务状态中.
type Task func(ctx context.Context) error

// Scheduler 任务调度器.
type Scheduler struct {
	scheduler gocron.Scheduler
	jobs      map[string]gocron.Job
	infos     map[string]*JobInfo
	mu        sync.RWMutex
	logger    *zerolog.Logger
	now       func() time.Time
}

// NewScheduler 创建调度器，同名任务不会并发执行.
func NewScheduler(opts ...gocron.SchedulerOption) (*Scheduler, error) {
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		jobs:      make(map[string]gocron.Job),
		infos:     make(map[string]*JobInfo),
		logger:    log.Logger(),
		now:       time.Now,
	}, nil
}

// AddCron 注册 cron 任务，ctx 会传给每次执行.
func (s *Scheduler) AddCron(ctx context.Context, name, cronExpr string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job with name %s already exists", name)
	}

	run := func(ctx context.Context) {
		s.setStatus(name, StatusRunning, nil)

		defer func() {
			if r := recover(); r != nil {
				s.setStatus(name, StatusError, fmt.Errorf("panic in job: %v", r))
				s.logger.Error().Str("job", name).Interface("panic", r).Msg("job panicked")
			}
		}()

		if err := task(ctx); err != nil {
			s.setStatus(name, StatusError, err)
			s.logger.Error().Str("job", name).Err(err).Msg("job failed")

			return
		}

		s.setStatus(name, StatusScheduled, nil)
	}

	j, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(run, ctx),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithEventListeners(
			gocron.AfterJobRuns(func(_ uuid.UUID, jobName string) { s.touch(jobName) }),
		),
	)
	if err != nil {
		return fmt.Errorf("add job %s: %w", name, err)
	}

	now := s.now()
	nextRun, _ := j.NextRun()

	s.jobs[name] = j
	s.infos[name] = &JobInfo{
		ID:        j.ID().String(),
		Name:      name,
		CronExpr:  cronExpr,
		NextRun:   nextRun,
		Status:    StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.logger.Info().Str("job", name).Str("cron", cronExpr).Msg("added cron job")

	return nil
}

// RunNow 立即执行一次任务，不影响原有计划.
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job with name %s does not exist", name)
	}

	return j.RunNow()
}

// RemoveJobByName 移除任务.
func (s *Scheduler) RemoveJobByName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("job with name %s does not exist", name)
	}

	if err := s.scheduler.RemoveJob(j.ID()); err != nil {
		return err
	}

	delete(s.jobs, name)
	delete(s.infos, name)

	return nil
}

// Start 启动调度器.
func (s *Scheduler) Start() {
	s.logger.Info().Int("jobs", len(s.jobs)).Msg("starting scheduler")
	s.scheduler.Start()
}

// Shutdown 停止调度器并等待运行中的任务结束.
func (s *Scheduler) Shutdown() error {
	s.logger.Info().Msg("stopping scheduler")

	return s.scheduler.Shutdown()
}

// JobsWaitingInQueue 等待执行的任务数.
func (s *Scheduler) JobsWaitingInQueue() int {
	return s.scheduler.JobsWaitingInQueue()
}

// GetJobInfos 按名称排序返回任务状态.
func (s *Scheduler) GetJobInfos() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.infos))
	for name, info := range s.infos {
		snapshot := *info
		if j, ok := s.jobs[name]; ok {
			if next, err := j.NextRun(); err == nil {
				snapshot.NextRun = next
			}
		}

		out = append(out, snapshot)
	}

	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })

	return out
}

// GetJobInfoByName 获取单个任务状态.
func (s *Scheduler) GetJobInfoByName(name string) (JobInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.infos[name]
	if !ok {
		return JobInfo{}, fmt.Errorf("job with name %s does not exist", name)
	}

	return *info, nil
}

func (s *Scheduler) setStatus(name string, status JobStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.infos[name]
	if !ok {
		return
	}

	now := s.now()
	info.Status = status
	info.UpdatedAt = now
	info.Error = ""

	switch {
	case err != nil:
		info.Error = err.Error()
	case status == StatusScheduled:
		info.LastSuccess = now
	}
}

func (s *Scheduler) touch(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.infos[name]; ok {
		info.LastRun = s.now()
		info.UpdatedAt = info.LastRun
	}
}
