package kafka

import (
	"StudentQuiz/internal/pkg/consts"
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarker struct {
	members map[string][]string
	err     error
}

func (f *fakeMarker) AddToSet(_ context.Context, key string, members ...string) error {
	if f.err != nil {
		return f.err
	}
	if f.members == nil {
		f.members = make(map[string][]string)
	}
	f.members[key] = append(f.members[key], members...)
	return nil
}

func eventMessage(t *testing.T, e *CommentEvent) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := json.Marshal(e)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: "comments", Value: payload}
}

func TestCommentsHandlerMarksQuestionDirty(t *testing.T) {
	marker := &fakeMarker{}
	h := NewCommentsHandler(marker)

	for _, action := range []string{consts.CommentCreated, consts.CommentDeleted, consts.CommentUndeleted} {
		err := h.logic(context.Background(), eventMessage(t, &CommentEvent{Action: action, CommentID: 1, QuestionID: 7}))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"7", "7", "7"}, marker.members[consts.CommentCountDirtyKey])
}

func TestCommentsHandlerIgnoresReports(t *testing.T) {
	marker := &fakeMarker{}
	h := NewCommentsHandler(marker)

	err := h.logic(context.Background(), eventMessage(t, &CommentEvent{
		Action: consts.CommentReported, CommentID: 1, QuestionID: 7, Recipients: []string{"a@example.com"},
	}))
	require.NoError(t, err)
	assert.Empty(t, marker.members)
}

func TestCommentsHandlerErrors(t *testing.T) {
	h := NewCommentsHandler(&fakeMarker{})
	err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")})
	assert.True(t, isPermanent(err))

	err = h.logic(context.Background(), eventMessage(t, &CommentEvent{Action: consts.CommentCreated}))
	assert.True(t, isPermanent(err))

	broken := NewCommentsHandler(&fakeMarker{err: errors.New("redis down")})
	err = broken.logic(context.Background(), eventMessage(t, &CommentEvent{Action: consts.CommentCreated, QuestionID: 3}))
	require.Error(t, err)
	assert.False(t, isPermanent(err))
}

func TestCommentEventProducerPublish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	mp := mocks.NewSyncProducer(t, cfg)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e CommentEvent
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.Action != consts.CommentDeleted || e.CommentID != 9 {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	p := NewCommentEventProducerWith(mp, "comments")
	err := p.Publish(context.Background(), &CommentEvent{Action: consts.CommentDeleted, CommentID: 9, QuestionID: 2})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestCommentEventProducerPublishFailure(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	mp := mocks.NewSyncProducer(t, cfg)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewCommentEventProducerWith(mp, "comments")
	err := p.Publish(context.Background(), &CommentEvent{Action: consts.CommentCreated, CommentID: 1, QuestionID: 2})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestHandleWithRetry(t *testing.T) {
	msg := &sarama.ConsumerMessage{Topic: "comments"}

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		handleWithRetry(context.Background(), msg, func(context.Context, *sarama.ConsumerMessage) error {
			calls++
			if calls < 3 {
				return errors.New("redis down")
			}
			return nil
		})
		assert.Equal(t, 3, calls)
	})

	t.Run("drops permanent errors", func(t *testing.T) {
		calls := 0
		handleWithRetry(context.Background(), msg, func(context.Context, *sarama.ConsumerMessage) error {
			calls++
			return permanent(errors.New("bad payload"))
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		handleWithRetry(ctx, msg, func(context.Context, *sarama.ConsumerMessage) error {
			calls++
			cancel()
			return errors.New("still failing")
		})
		assert.Equal(t, 1, calls)
	})
}
