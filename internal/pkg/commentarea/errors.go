package commentarea

import (
	"errors"
	"fmt"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment is empty")
)

const (
	ReasonAlreadyDeleted    = "already deleted"
	ReasonNotDeleted        = "not deleted"
	ReasonNotCreator        = "not the creator"
	ReasonEditWindowExpired = "edit window expired"
	ReasonReplyToReply      = "only root comments can receive replies"
	ReasonEditUnsupported   = "editing comments is not supported"
	ReasonReportDisabled    = "reporting is not enabled for this activity"
	ReasonReportOwnComment  = "cannot report your own comment"
)

// DenialError 写操作被权限规则拒绝，Reason 可直接展示给用户
type DenialError struct {
	Op     string
	Reason string
}

func (e *DenialError) Error() string {
	return fmt.Sprintf("%s denied: %s", e.Op, e.Reason)
}
