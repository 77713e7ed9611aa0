package model

// Comment 题目下的评论，ParentID 为 0 表示根评论，回复只能挂在根评论下
// 时间字段均为 Unix 秒，Deleted 非 0 即已删除
type Comment struct {
	ID           uint64  `gorm:"primaryKey" json:"id"`
	QuestionID   uint64  `gorm:"not null;index:idx_question_parent,priority:1" json:"questionId"`
	ParentID     uint64  `gorm:"not null;default:0;index:idx_question_parent,priority:2" json:"parentId"`
	UserID       uint64  `gorm:"not null;index:idx_user_id" json:"userId"`
	Content      string  `gorm:"column:comment;type:text;not null" json:"content"`
	Created      int64   `gorm:"not null;default:0" json:"created"`
	Deleted      int64   `gorm:"not null;default:0" json:"deleted"`
	DeleteUserID *uint64 `gorm:"column:delete_user_id" json:"deleteUserId"`
}

func (Comment) TableName() string {
	return "studentquiz_comment"
}

// IsRoot 是否为根评论
func (c *Comment) IsRoot() bool {
	return c.ParentID == 0
}

// IsDeleted 是否已软删除
func (c *Comment) IsDeleted() bool {
	return c.Deleted != 0
}
