package cron

import (
	"StudentQuiz/internal/job"
	"context"
	"fmt"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const defaultCommentCountSpec = "@every 1m"

type Manager struct {
	engine           *cron.Cron
	commentCountJob  *job.CommentCountJob
	commentCountSpec string
}

func NewCronManager(commentCountJob *job.CommentCountJob, commentCountSpec string) *Manager {
	if commentCountSpec == "" {
		commentCountSpec = defaultCommentCountSpec
	}
	return &Manager{
		engine:           cron.New(cron.WithSeconds()),
		commentCountJob:  commentCountJob,
		commentCountSpec: commentCountSpec,
	}
}

// Start 注册评论计数对账任务并启动引擎
func (s *Manager) Start() error {
	if _, err := s.engine.AddJob(s.commentCountSpec, s.commentCountJob); err != nil {
		return fmt.Errorf("register comment count job %q: %w", s.commentCountSpec, err)
	}
	s.engine.Start()
	log.Info("Cron 定时任务引擎启动", "comment_count_spec", s.commentCountSpec)
	return nil
}

// Stop 停止调度，返回的 ctx 在运行中的任务结束后关闭
func (s *Manager) Stop() context.Context {
	log.Info("Cron 定时任务引擎停止")
	return s.engine.Stop()
}
