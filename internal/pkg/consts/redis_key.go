package consts

const (
	CommentCountKey      = "studentquiz:comment:count:"
	CommentCountDirtyKey = "studentquiz:comment:count:dirty"
	UserPreferenceKey    = "user:preference:"
)
