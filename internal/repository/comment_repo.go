package repository

import (
	"StudentQuiz/internal/model"
	"StudentQuiz/internal/pkg/commentarea"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepo interface {
	QueryComments(ctx context.Context, q commentarea.Query) ([]*model.Comment, error)
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	SetDeleted(ctx context.Context, id uint64, deleted int64, deleteUserID *uint64) error
	CountComments(ctx context.Context, questionID uint64) (int64, error)
	HasActiveComment(ctx context.Context, questionID, userID uint64) (bool, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

const commentTable = "studentquiz_comment"

// sortColumns 排序字段到列的白名单
var sortColumns = map[commentarea.SortField]clause.Column{
	commentarea.SortByDate:      {Table: commentTable, Name: "created"},
	commentarea.SortByFirstName: {Table: "u", Name: "first_name"},
	commentarea.SortByLastName:  {Table: "u", Name: "last_name"},
}

// QueryComments 先确定根评论窗口，再取窗口内根评论的全部回复
func (s *CommentRepoImpl) QueryComments(ctx context.Context, q commentarea.Query) ([]*model.Comment, error) {
	db := s.db.WithContext(ctx)

	rootScope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where(commentTable+".question_id = ? AND "+commentTable+".parent_id = ?", q.QuestionID, commentarea.RootParentID)
		if q.RootID != 0 {
			tx = tx.Where(commentTable+".id = ?", q.RootID)
		}
		return tx
	}

	roots := make([]*model.Comment, 0)
	query := db.Model(&model.Comment{}).
		Select(commentTable + ".*").
		Joins("LEFT JOIN users u ON u.id = " + commentTable + ".user_id")

	if q.Windowed() {
		// 窗口只由发布时间决定，与展示排序无关
		var windowIDs []uint64
		err := db.Model(&model.Comment{}).
			Scopes(rootScope).
			Order(commentTable+".created DESC").
			Order(commentTable+".id DESC").
			Limit(q.Limit).
			Pluck(commentTable+".id", &windowIDs).Error
		if err != nil {
			return nil, err
		}
		if len(windowIDs) == 0 {
			return roots, nil
		}
		query = query.Where(commentTable+".id IN ?", windowIDs)
	} else {
		query = query.Scopes(rootScope)
	}

	if err := query.Scopes(orderRoots(q.Sort)).Find(&roots).Error; err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return roots, nil
	}

	rootIDs := make([]uint64, 0, len(roots))
	for _, r := range roots {
		rootIDs = append(rootIDs, r.ID)
	}

	replies := make([]*model.Comment, 0)
	err := db.Model(&model.Comment{}).
		Where("question_id = ? AND parent_id IN ?", q.QuestionID, rootIDs).
		Order("created ASC").
		Order("id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	return append(roots, replies...), nil
}

// orderRoots 按排序特征排列根评论，同名时按创建时间、id 升序
func orderRoots(f commentarea.SortFeature) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		column, ok := sortColumns[f.Field]
		if !ok {
			f = commentarea.DefaultSort
			column = sortColumns[f.Field]
		}
		tx = tx.Order(clause.OrderByColumn{Column: column, Desc: f.Desc()})
		if f.Field == commentarea.SortByDate {
			return tx.Order(clause.OrderByColumn{Column: clause.Column{Table: commentTable, Name: "id"}, Desc: f.Desc()})
		}
		return tx.
			Order(clause.OrderByColumn{Column: clause.Column{Table: commentTable, Name: "created"}}).
			Order(clause.OrderByColumn{Column: clause.Column{Table: commentTable, Name: "id"}})
	}
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.db.WithContext(ctx).First(comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(comment).Error
	})
}

// SetDeleted deleted 为 0 表示恢复
func (s *CommentRepoImpl) SetDeleted(ctx context.Context, id uint64, deleted int64, deleteUserID *uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.Comment{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"deleted":        deleted,
				"delete_user_id": deleteUserID,
			}).Error
	})
}

func (s *CommentRepoImpl) CountComments(ctx context.Context, questionID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("question_id = ? AND deleted = 0", questionID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) HasActiveComment(ctx context.Context, questionID, userID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("question_id = ? AND user_id = ? AND deleted = 0", questionID, userID).
		Count(&count).Error
	return count > 0, err
}
