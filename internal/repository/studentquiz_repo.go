package repository

import (
	"StudentQuiz/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type StudentQuizRepo interface {
	GetStudentQuiz(ctx context.Context, id uint64) (*model.StudentQuiz, error)
	GetQuestion(ctx context.Context, id uint64) (*model.Question, error)
	UpdateSettings(ctx context.Context, id uint64, updates map[string]interface{}) error
}

type StudentQuizRepoImpl struct {
	db *gorm.DB
}

func NewStudentQuizRepo(db *gorm.DB) StudentQuizRepo {
	return &StudentQuizRepoImpl{db: db}
}

func (s *StudentQuizRepoImpl) GetStudentQuiz(ctx context.Context, id uint64) (*model.StudentQuiz, error) {
	sq := &model.StudentQuiz{}
	if err := s.db.WithContext(ctx).First(sq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sq, nil
}

func (s *StudentQuizRepoImpl) GetQuestion(ctx context.Context, id uint64) (*model.Question, error) {
	q := &model.Question{}
	if err := s.db.WithContext(ctx).First(q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return q, nil
}

func (s *StudentQuizRepoImpl) UpdateSettings(ctx context.Context, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.StudentQuiz{}).Where("id = ?", id).Updates(updates).Error
	})
}
