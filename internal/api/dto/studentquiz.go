package dto

// StudentQuizSettingsDTO 活动设置更新请求，字段为空表示不修改
type StudentQuizSettingsDTO struct {
	AnonymRank      *bool   `json:"anonymRank"`
	ForceCommenting *bool   `json:"forceCommenting"`
	ReportingEmail  *string `json:"reportingEmail" validate:"omitempty,max=1000"`
}

type StudentQuizDTO struct {
	ID              uint64   `json:"id"`
	Name            string   `json:"name"`
	AnonymRank      bool     `json:"anonymRank"`
	ForceCommenting bool     `json:"forceCommenting"`
	ReportingEmails []string `json:"reportingEmails"`
}
