package repository

import (
	"StudentQuiz/internal/model"
	"context"

	"gorm.io/gorm"
)

type RoleRepo interface {
	GetUserRoleNames(ctx context.Context, userID uint64) ([]string, error)
}

type RoleRepoImpl struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepo {
	return &RoleRepoImpl{
		db: db,
	}
}

// GetUserRoleNames 用户拥有的角色名，写入 JWT
func (s *RoleRepoImpl) GetUserRoleNames(ctx context.Context, userID uint64) ([]string, error) {
	names := make([]string, 0)
	roles := model.Role{}.TableName()
	userRoles := model.UserRole{}.TableName()
	err := s.db.WithContext(ctx).
		Model(&model.Role{}).
		Joins("JOIN "+userRoles+" ON "+userRoles+".role_id = "+roles+".id").
		Where(userRoles+".user_id = ?", userID).
		Order(roles+".name").
		Pluck(roles+".name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
