package commentarea

import (
	"StudentQuiz/internal/model"
	"context"
	log "log/slog"
	"time"
)

// Node 一条评论在本次请求中的视图对象
// 父评论只通过 Comment.ParentID 引用，回复由根节点持有
type Node struct {
	row     *Row
	replies []*Node
	area    *Container
}

func newNode(area *Container, row *Row) *Node {
	return &Node{row: row, area: area, replies: make([]*Node, 0)}
}

func (n *Node) ID() uint64 {
	return n.row.Comment.ID
}

func (n *Node) ParentID() uint64 {
	return n.row.Comment.ParentID
}

// Comment 返回底层数据的副本
func (n *Node) Comment() model.Comment {
	return *n.row.Comment
}

func (n *Node) RowNumber() int {
	return n.row.RowNumber
}

func (n *Node) Replies() []*Node {
	return n.replies
}

func (n *Node) IsRoot() bool {
	return n.row.Comment.IsRoot()
}

func (n *Node) IsDeleted() bool {
	return n.row.Comment.IsDeleted()
}

// TotalReplies 回复数，includeDeleted 为 false 时只统计未删除的
func (n *Node) TotalReplies(includeDeleted bool) int {
	if includeDeleted {
		return len(n.replies)
	}
	count := 0
	for _, r := range n.replies {
		if !r.IsDeleted() {
			count++
		}
	}
	return count
}

func (n *Node) IsModerator() bool {
	return n.area.viewer.IsModerator
}

func (n *Node) IsCreator() bool {
	return n.area.viewer.UserID == n.row.Comment.UserID
}

func (n *Node) CanViewDeleted() bool {
	return n.IsModerator()
}

func (n *Node) CanViewUsername() bool {
	return !n.area.Anonymized()
}

func (n *Node) withinEditWindow() bool {
	created := time.Unix(n.row.Comment.Created, 0)
	return !n.area.now().After(created.Add(n.area.editableWindow))
}

// canModify 创建者在编辑窗口内或版主可以删除/恢复
func (n *Node) canModify() (bool, string) {
	if n.IsModerator() {
		return true, ""
	}
	if !n.IsCreator() {
		return false, ReasonNotCreator
	}
	if !n.withinEditWindow() {
		return false, ReasonEditWindowExpired
	}
	return true, ""
}

func (n *Node) CanDelete() (bool, string) {
	if n.IsDeleted() {
		return false, ReasonAlreadyDeleted
	}
	return n.canModify()
}

func (n *Node) CanUndelete() (bool, string) {
	if !n.IsDeleted() {
		return false, ReasonNotDeleted
	}
	return n.canModify()
}

func (n *Node) CanReply() (bool, string) {
	if !n.IsRoot() {
		return false, ReasonReplyToReply
	}
	return true, ""
}

// CanEdit 暂不支持编辑
func (n *Node) CanEdit() (bool, string) {
	return false, ReasonEditUnsupported
}

// CanReport 活动配置了举报邮箱时，版主或非创建者可以举报
func (n *Node) CanReport() (bool, string) {
	if len(n.area.activity.ReportingEmails) == 0 {
		return false, ReasonReportDisabled
	}
	if n.IsModerator() {
		return true, ""
	}
	if n.IsCreator() {
		return false, ReasonReportOwnComment
	}
	return true, ""
}

// Delete 软删除，记录删除时间与操作人
func (n *Node) Delete(ctx context.Context) error {
	if ok, reason := n.CanDelete(); !ok {
		return &DenialError{Op: "delete", Reason: reason}
	}

	deleted := n.area.now().Unix()
	operator := n.area.viewer.UserID
	if err := n.area.store.SetDeleted(ctx, n.ID(), deleted, &operator); err != nil {
		return err
	}

	n.row.Comment.Deleted = deleted
	n.row.Comment.DeleteUserID = &operator
	// 删除已经提交，操作人信息缺失只影响展示
	if err := n.area.loadUsers(ctx, []uint64{operator}); err != nil {
		log.WarnContext(ctx, "load comment delete user failed", "comment_id", n.ID(), "user_id", operator, "err", err)
	}
	return nil
}

// Undelete 撤销软删除，编辑窗口仍以创建时间计算
func (n *Node) Undelete(ctx context.Context) error {
	if ok, reason := n.CanUndelete(); !ok {
		return &DenialError{Op: "undelete", Reason: reason}
	}

	if err := n.area.store.SetDeleted(ctx, n.ID(), 0, nil); err != nil {
		return err
	}

	n.row.Comment.Deleted = 0
	n.row.Comment.DeleteUserID = nil
	return nil
}
