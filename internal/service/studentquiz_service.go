package service

import (
	"StudentQuiz/internal/api/dto"
	"StudentQuiz/internal/model"
	"StudentQuiz/internal/pkg/cache"
	"StudentQuiz/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type StudentQuizService interface {
	// GetQuestionActivity 题目及其所属活动设置
	GetQuestionActivity(ctx context.Context, questionID uint64) (*model.Question, *model.StudentQuiz, error)
	GetSettings(ctx context.Context, id uint64) (*dto.StudentQuizDTO, error)
	UpdateSettings(ctx context.Context, id uint64, req *dto.StudentQuizSettingsDTO) (*dto.StudentQuizDTO, error)
}

type studentQuizServiceImpl struct {
	repo       repository.StudentQuizRepo
	activities *cache.TTLCache[uint64, *model.StudentQuiz]
	questions  *cache.TTLCache[uint64, *model.Question]
}

func NewStudentQuizService(repo repository.StudentQuizRepo, cacheSize int, ttl time.Duration) (StudentQuizService, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	activities, err := cache.NewTTLCache[uint64, *model.StudentQuiz](cacheSize, ttl)
	if err != nil {
		return nil, err
	}
	questions, err := cache.NewTTLCache[uint64, *model.Question](cacheSize*4, ttl)
	if err != nil {
		return nil, err
	}
	return &studentQuizServiceImpl{repo: repo, activities: activities, questions: questions}, nil
}

func (s *studentQuizServiceImpl) GetQuestionActivity(ctx context.Context, questionID uint64) (*model.Question, *model.StudentQuiz, error) {
	question, ok := s.questions.Get(questionID)
	if !ok {
		q, err := s.repo.GetQuestion(ctx, questionID)
		if err != nil {
			return nil, nil, err
		}
		if q == nil {
			return nil, nil, ErrQuestionNotFound
		}
		s.questions.Set(questionID, q)
		question = q
	}

	activity, err := s.getActivity(ctx, question.StudentQuizID)
	if err != nil {
		return nil, nil, err
	}
	return question, activity, nil
}

func (s *studentQuizServiceImpl) GetSettings(ctx context.Context, id uint64) (*dto.StudentQuizDTO, error) {
	activity, err := s.getActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStudentQuizDTO(activity), nil
}

func (s *studentQuizServiceImpl) UpdateSettings(ctx context.Context, id uint64, req *dto.StudentQuizSettingsDTO) (*dto.StudentQuizDTO, error) {
	updates := make(map[string]interface{})
	if req.AnonymRank != nil {
		updates["anonym_rank"] = *req.AnonymRank
	}
	if req.ForceCommenting != nil {
		updates["force_commenting"] = *req.ForceCommenting
	}
	if req.ReportingEmail != nil {
		updates["reporting_email"] = *req.ReportingEmail
	}

	existing, err := s.repo.GetStudentQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrStudentQuizNotFound
	}
	if err = s.repo.UpdateSettings(ctx, id, updates); err != nil {
		return nil, err
	}
	s.activities.Delete(id)
	log.InfoContext(ctx, "studentquiz settings updated", "studentquiz_id", id, "fields", len(updates))

	return s.GetSettings(ctx, id)
}

func (s *studentQuizServiceImpl) getActivity(ctx context.Context, id uint64) (*model.StudentQuiz, error) {
	if activity, ok := s.activities.Get(id); ok {
		return activity, nil
	}
	activity, err := s.repo.GetStudentQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrStudentQuizNotFound
	}
	s.activities.Set(id, activity)
	return activity, nil
}

func toStudentQuizDTO(sq *model.StudentQuiz) *dto.StudentQuizDTO {
	return &dto.StudentQuizDTO{
		ID:              sq.ID,
		Name:            sq.Name,
		AnonymRank:      sq.AnonymRank,
		ForceCommenting: sq.ForceCommenting,
		ReportingEmails: sq.ReportingEmails(),
	}
}
