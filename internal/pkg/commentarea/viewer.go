package commentarea

import "time"

const (
	// RootParentID 根评论的 parent_id
	RootParentID uint64 = 0
	// ShowAll 不限制根评论数量
	ShowAll = 0
	// DefaultNumberToShow 首屏展示的根评论数
	DefaultNumberToShow = 5
	// ShortenLength 摘要最大字符数
	ShortenLength = 160
	// DefaultEditableWindow 创建者可删除/恢复自己评论的时间窗口
	DefaultEditableWindow = 600 * time.Second
	// SortPreferenceName 排序偏好在用户偏好表中的键
	SortPreferenceName = "mod_studentquiz_comment_sort"
)

// Viewer 当前查看者及其能力，由调用方从认证信息中解析后传入
type Viewer struct {
	UserID             uint64
	IsModerator        bool
	CanUnhideAnonymous bool
}

// Activity 评论区所属活动的设置
type Activity struct {
	AnonymRank      bool
	ForceCommenting bool
	ReportingEmails []string
}

// Anonymized 查看者在该活动下是否只能看到匿名作者
func (v Viewer) Anonymized(a Activity) bool {
	if v.IsModerator || v.CanUnhideAnonymous {
		return false
	}
	return a.AnonymRank
}
