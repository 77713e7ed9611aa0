package model

import "time"

type CommentReport struct {
	ID         uint64   `gorm:"primaryKey"`
	CommentID  uint64   `gorm:"not null;uniqueIndex:idx_comment_reporter,priority:1"`
	ReporterID uint64   `gorm:"not null;uniqueIndex:idx_comment_reporter,priority:2"`
	Conditions []int    `gorm:"type:json;serializer:json"`
	Detail     string   `gorm:"type:varchar(1000);not null;default:''"`
	Recipients []string `gorm:"type:json;serializer:json"`
	CreatedAt  time.Time
}

func (CommentReport) TableName() string {
	return "studentquiz_comment_report"
}
