package job

import (
	"StudentQuiz/internal/pkg/consts"
	"StudentQuiz/internal/pkg/logger"
	"StudentQuiz/internal/pkg/util"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// DirtySet 记录待重算评论数的题目集合
type DirtySet interface {
	Rename(ctx context.Context, oldKey string, newKey string) error
	Members(ctx context.Context, key string) ([]string, error)
	Delete(ctx context.Context, keys ...string) error
}

// CommentCounter 重新计算并回写题目的评论数
type CommentCounter interface {
	RefreshCommentCount(ctx context.Context, questionID uint64) (int64, error)
}

type CommentCountJob struct {
	dirty   DirtySet
	counter CommentCounter
}

func NewCommentCountJob(dirty DirtySet, counter CommentCounter) *CommentCountJob {
	return &CommentCountJob{
		dirty:   dirty,
		counter: counter,
	}
}

func (s *CommentCountJob) Run() {
	traceID := "job-comment-count-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	s.run(ctx)
}

func (s *CommentCountJob) run(ctx context.Context) {
	processingKey := consts.CommentCountDirtyKey + ":processing"
	// 集合为空时 rename 会失败，直接跳过本轮
	if err := s.dirty.Rename(ctx, consts.CommentCountDirtyKey, processingKey); err != nil {
		return
	}

	members, err := s.dirty.Members(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get comment dirty set error", "err", err)
		return
	}

	questionIDs, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		log.ErrorContext(ctx, "convert comment dirty set error", "err", err)
		return
	}

	for _, qid := range questionIDs {
		if _, err = s.counter.RefreshCommentCount(ctx, qid); err != nil {
			log.ErrorContext(ctx, "refresh comment count error", "question_id", qid, "err", err)
		}
	}

	if err = s.dirty.Delete(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete comment processing key error", "err", err)
		return
	}
	log.InfoContext(ctx, "comment count job finished", "questions", len(questionIDs))
}
