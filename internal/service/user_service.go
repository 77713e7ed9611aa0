package service

import (
	"StudentQuiz/internal/api/dto"
	"StudentQuiz/internal/pkg/security"
	"StudentQuiz/internal/repository"
	"context"
)

type UserService interface {
	Login(ctx context.Context, dto *dto.CredentialDTO) (string, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
	roleRepo repository.RoleRepo
}

func NewUserService(userRepo repository.UserRepo, roleRepo repository.RoleRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *UserServiceImpl) Login(ctx context.Context, dto *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, dto.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if user.Password == nil {
		return "", ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(dto.Password, *user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}

	roleNames, err := s.roleRepo.GetUserRoleNames(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return security.GenerateToken(user.ID, roleNames)
}
