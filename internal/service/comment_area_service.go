package service

import (
	"StudentQuiz/internal/api/dto"
	"StudentQuiz/internal/model"
	"StudentQuiz/internal/pkg/commentarea"
	"StudentQuiz/internal/pkg/consts"
	"StudentQuiz/internal/pkg/kafka"
	"StudentQuiz/internal/pkg/metrics"
	"StudentQuiz/internal/pkg/util"
	"StudentQuiz/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const commentCountTTL = 10 * time.Minute

// Cache 评论数与偏好的缓存
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// EventPublisher 评论生命周期事件的发布者
type EventPublisher interface {
	Publish(ctx context.Context, event *kafka.CommentEvent) error
}

type CommentAreaOptions struct {
	EditableWindow      time.Duration
	ShortenLength       int
	DefaultNumberToShow int
	SiteURL             string
}

type CommentAreaService interface {
	GetComments(ctx context.Context, viewer commentarea.Viewer, questionID uint64, limit int, sortHint string) (*dto.CommentListDTO, error)
	ExpandComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64) (*dto.CommentDTO, error)
	CreateComment(ctx context.Context, viewer commentarea.Viewer, questionID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64) (*dto.CommentActionResultDTO, error)
	UndeleteComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64) (*dto.CommentActionResultDTO, error)
	HasComments(ctx context.Context, viewer commentarea.Viewer, questionID uint64) (bool, error)
	GetSortFeatures(ctx context.Context, viewer commentarea.Viewer, questionID uint64) ([]*dto.SortFeatureDTO, error)
	SetSortFeature(ctx context.Context, viewer commentarea.Viewer, questionID uint64, feature string) ([]*dto.SortFeatureDTO, error)
	ReportComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64, req *dto.CommentReportDTO) error
	RefreshCommentCount(ctx context.Context, questionID uint64) (int64, error)
	DefaultNumberToShow() int
}

type commentAreaServiceImpl struct {
	commentRepo repository.CommentRepo
	userRepo    repository.UserRepo
	reportRepo  repository.ReportRepo
	sqSvc       StudentQuizService
	planner     *commentarea.SortPlanner
	cache       Cache
	publisher   EventPublisher
	metrics     *metrics.CommentMetrics
	opts        CommentAreaOptions
	now         func() time.Time
}

func NewCommentAreaService(
	commentRepo repository.CommentRepo,
	userRepo repository.UserRepo,
	prefRepo repository.PreferenceRepo,
	reportRepo repository.ReportRepo,
	sqSvc StudentQuizService,
	cache Cache,
	publisher EventPublisher,
	m *metrics.CommentMetrics,
	opts CommentAreaOptions,
) CommentAreaService {
	if opts.DefaultNumberToShow <= 0 {
		opts.DefaultNumberToShow = commentarea.DefaultNumberToShow
	}
	return &commentAreaServiceImpl{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		reportRepo:  reportRepo,
		sqSvc:       sqSvc,
		planner:     commentarea.NewSortPlanner(&cachedPreferences{repo: prefRepo, cache: cache}),
		cache:       cache,
		publisher:   publisher,
		metrics:     m,
		opts:        opts,
		now:         time.Now,
	}
}

func (s *commentAreaServiceImpl) DefaultNumberToShow() int {
	return s.opts.DefaultNumberToShow
}

func (s *commentAreaServiceImpl) GetComments(ctx context.Context, viewer commentarea.Viewer, questionID uint64, limit int, sortHint string) (*dto.CommentListDTO, error) {
	start := s.now()
	area, activity, err := s.newContainer(ctx, viewer, questionID)
	if err != nil {
		return nil, err
	}

	sort, err := s.planner.Resolve(ctx, viewer, activity, sortHint)
	if err != nil {
		log.WarnContext(ctx, "save comment sort preference failed", "user_id", viewer.UserID, "err", err)
		sort = commentarea.ResolveSort(sortHint, area.Anonymized())
	}

	var (
		nodes []*commentarea.Node
		total int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fetchErr error
		nodes, fetchErr = area.FetchAll(gCtx, limit, sort)
		return fetchErr
	})
	g.Go(func() error {
		var countErr error
		total, countErr = s.countComments(gCtx, area)
		return countErr
	})
	if err = g.Wait(); err != nil {
		s.metrics.RecordOperation("get_comments", metrics.ResultError, time.Since(start))
		return nil, err
	}

	comments := make([]*dto.CommentDTO, 0, len(nodes))
	for _, n := range nodes {
		comments = append(comments, n.ToDTO())
	}
	s.metrics.RecordOperation("get_comments", metrics.ResultSuccess, time.Since(start))

	return &dto.CommentListDTO{
		Comments:     comments,
		Total:        total,
		SortFeature:  sort.String(),
		SortFeatures: sortFeatureDTOs(area.Anonymized(), sort),
	}, nil
}

func (s *commentAreaServiceImpl) ExpandComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64) (*dto.CommentDTO, error) {
	node, _, err := s.loadNode(ctx, viewer, commentID)
	if err != nil {
		return nil, err
	}
	return node.ToDTO(), nil
}

func (s *commentAreaServiceImpl) CreateComment(ctx context.Context, viewer commentarea.Viewer, questionID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	start := s.now()
	area, _, err := s.newContainer(ctx, viewer, questionID)
	if err != nil {
		return nil, err
	}

	content := util.FormatContent(req.Message.Text, req.Message.Format)
	id, err := area.CreateComment(ctx, req.ReplyTo, content)
	if err != nil {
		s.metrics.RecordOperation("create", resultOf(err), time.Since(start))
		return nil, mapAreaError(err)
	}

	node, err := area.FetchOne(ctx, id)
	if err != nil {
		return nil, mapAreaError(err)
	}

	s.invalidateCount(ctx, questionID)
	comment := node.Comment()
	s.publish(ctx, consts.CommentCreated, &comment, viewer.UserID, nil)
	s.metrics.RecordOperation("create", metrics.ResultSuccess, time.Since(start))
	log.InfoContext(ctx, "comment created", "comment_id", id, "question_id", questionID, "parent_id", req.ReplyTo)

	return node.ToDTO(), nil
}

func (s *commentAreaServiceImpl) DeleteComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64) (*dto.CommentActionResultDTO, error) {
	return s.changeDeleteState(ctx, viewer, commentID, "delete", consts.CommentDeleted, (*commentarea.Node).Delete)
}

func (s *commentAreaServiceImpl) UndeleteComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64) (*dto.CommentActionResultDTO, error) {
	return s.changeDeleteState(ctx, viewer, commentID, "undelete", consts.CommentUndeleted, (*commentarea.Node).Undelete)
}

// changeDeleteState 权限拒绝不是错误，结果中带上原因
func (s *commentAreaServiceImpl) changeDeleteState(
	ctx context.Context,
	viewer commentarea.Viewer,
	commentID uint64,
	operation string,
	action string,
	transition func(*commentarea.Node, context.Context) error,
) (*dto.CommentActionResultDTO, error) {
	start := s.now()
	node, _, err := s.loadNode(ctx, viewer, commentID)
	if err != nil {
		return nil, err
	}

	if err = transition(node, ctx); err != nil {
		var denied *commentarea.DenialError
		if errors.As(err, &denied) {
			s.metrics.RecordOperation(operation, metrics.ResultDenied, time.Since(start))
			log.InfoContext(ctx, "comment "+operation+" denied", "comment_id", commentID, "user_id", viewer.UserID, "reason", denied.Reason)
			return &dto.CommentActionResultDTO{Success: false, Message: denied.Reason}, nil
		}
		s.metrics.RecordOperation(operation, metrics.ResultError, time.Since(start))
		return nil, err
	}

	comment := node.Comment()
	s.invalidateCount(ctx, comment.QuestionID)
	s.publish(ctx, action, &comment, viewer.UserID, nil)
	s.metrics.RecordOperation(operation, metrics.ResultSuccess, time.Since(start))
	log.InfoContext(ctx, "comment "+operation+" success", "comment_id", commentID, "user_id", viewer.UserID)

	return &dto.CommentActionResultDTO{Success: true, Message: "success", PostInfo: node.ToDTO()}, nil
}

func (s *commentAreaServiceImpl) HasComments(ctx context.Context, viewer commentarea.Viewer, questionID uint64) (bool, error) {
	_, activity, err := s.sqSvc.GetQuestionActivity(ctx, questionID)
	if err != nil {
		return false, err
	}
	if !activity.ForceCommenting {
		return true, nil
	}
	return s.commentRepo.HasActiveComment(ctx, questionID, viewer.UserID)
}

func (s *commentAreaServiceImpl) GetSortFeatures(ctx context.Context, viewer commentarea.Viewer, questionID uint64) ([]*dto.SortFeatureDTO, error) {
	_, activity, err := s.sqSvc.GetQuestionActivity(ctx, questionID)
	if err != nil {
		return nil, err
	}
	a := toActivity(activity)
	current := s.planner.Current(ctx, viewer, a)
	return sortFeatureDTOs(viewer.Anonymized(a), current), nil
}

func (s *commentAreaServiceImpl) SetSortFeature(ctx context.Context, viewer commentarea.Viewer, questionID uint64, feature string) ([]*dto.SortFeatureDTO, error) {
	_, activity, err := s.sqSvc.GetQuestionActivity(ctx, questionID)
	if err != nil {
		return nil, err
	}
	a := toActivity(activity)
	saved, err := s.planner.Save(ctx, viewer, a, feature)
	if err != nil {
		return nil, err
	}
	return sortFeatureDTOs(viewer.Anonymized(a), saved), nil
}

func (s *commentAreaServiceImpl) ReportComment(ctx context.Context, viewer commentarea.Viewer, commentID uint64, req *dto.CommentReportDTO) error {
	conditions := normalizeConditions(req.Conditions)
	if len(conditions) == 0 {
		return ErrReportConditionsEmpty
	}

	node, activity, err := s.loadNode(ctx, viewer, commentID)
	if err != nil {
		return err
	}
	if ok, reason := node.CanReport(); !ok {
		return &commentarea.DenialError{Op: "report", Reason: reason}
	}

	report := &model.CommentReport{
		CommentID:  commentID,
		ReporterID: viewer.UserID,
		Conditions: conditions,
		Detail:     req.Detail,
		Recipients: activity.ReportingEmails,
	}
	if err = s.reportRepo.CreateReport(ctx, report); err != nil {
		if isDuplicateError(err) {
			return ErrActionDuplicate
		}
		return err
	}

	comment := node.Comment()
	s.publish(ctx, consts.CommentReported, &comment, viewer.UserID, activity.ReportingEmails)
	log.InfoContext(ctx, "comment reported", "comment_id", commentID, "reporter_id", viewer.UserID)
	return nil
}

func (s *commentAreaServiceImpl) RefreshCommentCount(ctx context.Context, questionID uint64) (int64, error) {
	count, err := s.commentRepo.CountComments(ctx, questionID)
	if err != nil {
		return 0, err
	}
	if err = s.cache.Set(ctx, commentCountKey(questionID), strconv.FormatInt(count, 10), commentCountTTL); err != nil {
		return count, err
	}
	return count, nil
}

func (s *commentAreaServiceImpl) newContainer(ctx context.Context, viewer commentarea.Viewer, questionID uint64) (*commentarea.Container, commentarea.Activity, error) {
	_, sq, err := s.sqSvc.GetQuestionActivity(ctx, questionID)
	if err != nil {
		return nil, commentarea.Activity{}, err
	}
	activity := toActivity(sq)
	siteURL := s.opts.SiteURL
	if siteURL == "" {
		siteURL, _ = ctx.Value(consts.BaseURL).(string)
	}
	area := commentarea.NewContainer(commentarea.Options{
		Store:          s.commentRepo,
		Users:          s.userRepo,
		QuestionID:     questionID,
		Viewer:         viewer,
		Activity:       activity,
		EditableWindow: s.opts.EditableWindow,
		ShortenLength:  s.opts.ShortenLength,
		SiteURL:        siteURL,
		Now:            s.now,
	})
	return area, activity, nil
}

// loadNode 通过评论 id 定位题目并加载节点
func (s *commentAreaServiceImpl) loadNode(ctx context.Context, viewer commentarea.Viewer, commentID uint64) (*commentarea.Node, commentarea.Activity, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, commentarea.Activity{}, err
	}
	if comment == nil {
		return nil, commentarea.Activity{}, ErrCommentNotFound
	}

	area, activity, err := s.newContainer(ctx, viewer, comment.QuestionID)
	if err != nil {
		return nil, commentarea.Activity{}, err
	}
	node, err := area.FetchOne(ctx, commentID)
	if err != nil {
		return nil, commentarea.Activity{}, mapAreaError(err)
	}
	return node, activity, nil
}

// countComments 先读缓存，未命中时回源并回填
func (s *commentAreaServiceImpl) countComments(ctx context.Context, area *commentarea.Container) (int64, error) {
	key := commentCountKey(area.QuestionID())
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "read comment count cache failed", "key", key, "err", err)
	} else if cached != "" {
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return count, nil
		}
	}

	count, err := area.NumComments(ctx)
	if err != nil {
		return 0, err
	}
	if err = s.cache.Set(ctx, key, strconv.FormatInt(count, 10), commentCountTTL); err != nil {
		log.WarnContext(ctx, "write comment count cache failed", "key", key, "err", err)
	}
	return count, nil
}

func (s *commentAreaServiceImpl) invalidateCount(ctx context.Context, questionID uint64) {
	if err := s.cache.Delete(ctx, commentCountKey(questionID)); err != nil {
		log.WarnContext(ctx, "invalidate comment count cache failed", "question_id", questionID, "err", err)
	}
}

// publish 事件发送失败不影响主流程
func (s *commentAreaServiceImpl) publish(ctx context.Context, action string, c *model.Comment, actorID uint64, recipients []string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, &kafka.CommentEvent{
		Action:     action,
		CommentID:  c.ID,
		QuestionID: c.QuestionID,
		ParentID:   c.ParentID,
		AuthorID:   c.UserID,
		ActorID:    actorID,
		Recipients: recipients,
		Timestamp:  s.now().Unix(),
	})
	s.metrics.RecordEvent(action, err)
	if err != nil {
		log.ErrorContext(ctx, "publish comment event failed", "action", action, "comment_id", c.ID, "err", err)
	}
}

func commentCountKey(questionID uint64) string {
	return consts.CommentCountKey + strconv.FormatUint(questionID, 10)
}

func toActivity(sq *model.StudentQuiz) commentarea.Activity {
	return commentarea.Activity{
		AnonymRank:      sq.AnonymRank,
		ForceCommenting: sq.ForceCommenting,
		ReportingEmails: sq.ReportingEmails(),
	}
}

func sortFeatureDTOs(anonymized bool, selected commentarea.SortFeature) []*dto.SortFeatureDTO {
	features := commentarea.AvailableFeatures(anonymized)
	out := make([]*dto.SortFeatureDTO, 0, len(features))
	for _, f := range features {
		out = append(out, &dto.SortFeatureDTO{
			Value:     f.String(),
			Field:     string(f.Field),
			Direction: string(f.Direction),
			Selected:  f == selected,
		})
	}
	return out
}

// normalizeConditions 去重排序并丢弃 1-6 以外的取值
func normalizeConditions(conditions []int) []int {
	out := make([]int, 0, len(conditions))
	for _, c := range conditions {
		if c >= 1 && c <= 6 && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

func mapAreaError(err error) error {
	switch {
	case errors.Is(err, commentarea.ErrCommentNotFound):
		return ErrCommentNotFound
	case errors.Is(err, commentarea.ErrEmptyComment):
		return ErrCommentEmpty
	}
	return err
}

func resultOf(err error) string {
	var denied *commentarea.DenialError
	if errors.As(err, &denied) {
		return metrics.ResultDenied
	}
	return metrics.ResultError
}

func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
