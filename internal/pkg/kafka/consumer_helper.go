package kafka

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize       = 32
	batchWorkers    = 8
	batchTimeout    = 1 * time.Second
	minRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，全部完成后提交最后一条的 offset
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	if len(messages) == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(batchWorkers)
	for _, msg := range messages {
		g.Go(func() error {
			handleWithRetry(session.Context(), msg, logic)
			return nil
		})
	}
	_ = g.Wait()

	session.MarkMessage(messages[len(messages)-1], "")
	session.Commit()
}

// handleWithRetry 失败时指数退避重试，直到成功、遇到永久错误或会话结束
func handleWithRetry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) {
	backoff := minRetryBackoff
	for {
		err := logic(ctx, m)
		if err == nil {
			return
		}
		if isPermanent(err) {
			log.WarnContext(ctx, "drop unprocessable message", "topic", m.Topic, "offset", m.Offset, "err", err)
			return
		}
		log.ErrorContext(ctx, "process message error", "topic", m.Topic, "offset", m.Offset, "retry_in", backoff, "err", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxRetryBackoff)
	}
}

// permanentError 重试也无法成功的消息，例如格式错误
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return &permanentError{err: err}
}

func isPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
