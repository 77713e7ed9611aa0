package repository

import (
	"StudentQuiz/internal/model"
	"context"

	"gorm.io/gorm"
)

type ReportRepo interface {
	CreateReport(ctx context.Context, report *model.CommentReport) error
}

type ReportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &ReportRepoImpl{db: db}
}

func (s *ReportRepoImpl) CreateReport(ctx context.Context, report *model.CommentReport) error {
	return s.db.WithContext(ctx).Create(report).Error
}
