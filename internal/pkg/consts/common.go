package consts

// 角色名，与 JWT roles 声明一致
const (
	RoleManager         = "MANAGER"
	RoleUnhideAnonymous = "UNHIDE_ANONYMOUS"
)

// 评论事件类型
const (
	CommentCreated   = "comment_created"
	CommentDeleted   = "comment_deleted"
	CommentUndeleted = "comment_undeleted"
	CommentReported  = "comment_reported"
)

// BaseURL 请求来源站点，未配置 site_url 时用于拼接资料页与举报链接
const BaseURL = "base_url"
