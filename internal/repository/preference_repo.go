package repository

import (
	"StudentQuiz/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepo 用户偏好，未设置时返回空串
type PreferenceRepo interface {
	GetPreference(ctx context.Context, userID uint64, name string) (string, error)
	SetPreference(ctx context.Context, userID uint64, name string, value string) error
}

type PreferenceRepoImpl struct {
	db *gorm.DB
}

func NewPreferenceRepo(db *gorm.DB) PreferenceRepo {
	return &PreferenceRepoImpl{db: db}
}

func (s *PreferenceRepoImpl) GetPreference(ctx context.Context, userID uint64, name string) (string, error) {
	pref := &model.UserPreference{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return pref.Value, nil
}

func (s *PreferenceRepoImpl) SetPreference(ctx context.Context, userID uint64, name string, value string) error {
	pref := &model.UserPreference{UserID: userID, Name: name, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(pref).Error
}
