package dto

// CommentDTO 评论视图，已按查看者权限脱敏
type CommentDTO struct {
	ID              uint64        `json:"id"`
	QuestionID      uint64        `json:"questionId"`
	ParentID        uint64        `json:"parentId"`
	Content         string        `json:"content"`
	ShortContent    string        `json:"shortContent"`
	NumberOfReplies int           `json:"numberOfReplies"`
	IsRoot          bool          `json:"isRoot"`
	IsDeleted       bool          `json:"isDeleted"`
	DeletedAt       string        `json:"deletedAt"`
	AuthorName      string        `json:"authorName"`
	AuthorID        int64         `json:"authorId"`
	AuthorProfile   string        `json:"authorProfileUrl"`
	PostedAt        string        `json:"postedAt"`
	DeleteUser      DeleteUserDTO `json:"deleteUser"`
	CanEdit         bool          `json:"canEdit"`
	CanDelete       bool          `json:"canDelete"`
	CanUndelete     bool          `json:"canUndelete"`
	CanViewDeleted  bool          `json:"canViewDeleted"`
	CanReply        bool          `json:"canReply"`
	CanReport       bool          `json:"canReport"`
	ReportLink      string        `json:"reportLink,omitempty"`
	IsCreator       bool          `json:"isCreator"`
	RowNumber       int           `json:"rowNumber"`
	Replies         []*CommentDTO `json:"replies"`
}

type DeleteUserDTO struct {
	ID         uint64 `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	ProfileURL string `json:"profileUrl"`
}

// CommentListDTO get_comments 响应
type CommentListDTO struct {
	Comments     []*CommentDTO     `json:"comments"`
	Total        int64             `json:"total"`
	SortFeature  string            `json:"sortFeature"`
	SortFeatures []*SortFeatureDTO `json:"sortFeatures"`
}

// CommentMessageDTO 评论正文，Format 1:HTML 2:纯文本 4:Markdown
type CommentMessageDTO struct {
	Text   string `json:"text" binding:"required,max=10000"`
	Format int    `json:"format" binding:"omitempty,oneof=1 2 4"`
}

// CommentCreateDTO 创建评论请求，ReplyTo 为 0 表示根评论
type CommentCreateDTO struct {
	ReplyTo uint64            `json:"replyto"`
	Message CommentMessageDTO `json:"message" binding:"required"`
}

// CommentActionResultDTO 删除/恢复评论的结果，失败时 Message 为原因
type CommentActionResultDTO struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	PostInfo *CommentDTO `json:"postinfo,omitempty"`
}

type SortFeatureDTO struct {
	Value     string `json:"value"`
	Field     string `json:"field"`
	Direction string `json:"direction"`
	Selected  bool   `json:"selected"`
}

type SortFeatureReq struct {
	Feature string `json:"feature" binding:"required,max=64"`
}

// CommentReportDTO 举报请求，Conditions 取值 1-6
type CommentReportDTO struct {
	Conditions []int  `json:"conditions" binding:"required,min=1,max=6,dive,min=1,max=6"`
	Detail     string `json:"detail" binding:"max=1000"`
}

type HasCommentsDTO struct {
	Exists bool `json:"exists"`
}
