package kafka

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// CommentEvent 评论生命周期事件
type CommentEvent struct {
	Action     string   `json:"action"`
	CommentID  uint64   `json:"commentId"`
	QuestionID uint64   `json:"questionId"`
	ParentID   uint64   `json:"parentId"`
	AuthorID   uint64   `json:"authorId"`
	ActorID    uint64   `json:"actorId"`
	Recipients []string `json:"recipients,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

// ToCommentEvent 将 kafka 消息解析为评论事件
func ToCommentEvent(msg *sarama.ConsumerMessage) (*CommentEvent, error) {
	var event CommentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, err
	}
	if event.Action == "" || event.QuestionID == 0 {
		return nil, errors.New("comment event missing action or question id")
	}
	return &event, nil
}
