package kafka

import (
	"StudentQuiz/internal/pkg/consts"
	"StudentQuiz/internal/pkg/logger"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
)

// DirtyMarker 记录需要重新统计评论数的题目
type DirtyMarker interface {
	AddToSet(ctx context.Context, key string, members ...string) error
}

// CommentsHandler 消费评论事件，标记计数缓存待同步，举报事件交给通知链路
type CommentsHandler struct {
	marker DirtyMarker
}

func NewCommentsHandler(marker DirtyMarker) *CommentsHandler {
	return &CommentsHandler{marker: marker}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment event consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment event consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("comment event process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToCommentEvent(msg)
	if err != nil {
		return permanent(err)
	}
	ctx = context.WithValue(ctx, logger.TraceIDKey, "kafka-comment-"+strconv.FormatUint(event.CommentID, 10))

	switch event.Action {
	case consts.CommentCreated, consts.CommentDeleted, consts.CommentUndeleted:
		return s.marker.AddToSet(ctx, consts.CommentCountDirtyKey, strconv.FormatUint(event.QuestionID, 10))
	case consts.CommentReported:
		// 邮件投递由外部通知服务订阅同一 topic 完成
		log.InfoContext(ctx, "comment reported",
			"comment_id", event.CommentID,
			"reporter_id", event.ActorID,
			"recipients", event.Recipients)
		return nil
	default:
		log.WarnContext(ctx, "unknown comment event action", "action", event.Action)
		return nil
	}
}
