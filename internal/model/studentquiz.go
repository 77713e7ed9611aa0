package model

import (
	"strings"
	"time"
)

// StudentQuiz 活动设置
type StudentQuiz struct {
	ID              uint64 `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"type:varchar(255);not null" json:"name"`
	AnonymRank      bool   `gorm:"type:tinyint(1);not null" json:"anonymRank"`
	ForceCommenting bool   `gorm:"type:tinyint(1);not null;default:0" json:"forceCommenting"`
	ReportingEmail  string `gorm:"type:varchar(1000);not null;default:''" json:"reportingEmail"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (StudentQuiz) TableName() string {
	return "studentquiz"
}

// ReportingEmails 以 ; 分隔的举报通知邮箱
func (s *StudentQuiz) ReportingEmails() []string {
	emails := make([]string, 0)
	for _, e := range strings.Split(s.ReportingEmail, ";") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

type Question struct {
	ID            uint64 `gorm:"primaryKey" json:"id"`
	StudentQuizID uint64 `gorm:"not null;index:idx_studentquiz_id" json:"studentQuizId"`
	Name          string `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt     time.Time
}

func (Question) TableName() string {
	return "studentquiz_question"
}
