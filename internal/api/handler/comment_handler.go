package handler

import (
	"StudentQuiz/internal/api/dto"
	"StudentQuiz/internal/api/middleware"
	"StudentQuiz/internal/pkg/response"
	"StudentQuiz/internal/pkg/util"
	"StudentQuiz/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	areaSvc service.CommentAreaService
}

func NewCommentHandler(areaSvc service.CommentAreaService) *CommentHandler {
	return &CommentHandler{
		areaSvc: areaSvc,
	}
}

// GetComments 获取题目下的评论树，limit=0 表示全部
func (s *CommentHandler) GetComments(c *gin.Context) {
	questionID, ok := util.ParseID(c.Param("question_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit := s.areaSvc.DefaultNumberToShow()
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		limit = v
	}

	list, err := s.areaSvc.GetComments(c.Request.Context(), middleware.CurrentViewer(c), questionID, limit, c.Query("sort"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// ExpandComment 获取单条评论及其全部回复
func (s *CommentHandler) ExpandComment(c *gin.Context) {
	commentID, ok := util.ParseID(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	comment, err := s.areaSvc.ExpandComment(c.Request.Context(), middleware.CurrentViewer(c), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	questionID, ok := util.ParseID(c.Param("question_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Message.Format == 0 {
		req.Message.Format = util.FormatHTML
	}

	comment, err := s.areaSvc.CreateComment(c.Request.Context(), middleware.CurrentViewer(c), questionID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 权限不足时仍返回 200，success=false 并带上原因
func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := util.ParseID(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	result, err := s.areaSvc.DeleteComment(c.Request.Context(), middleware.CurrentViewer(c), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *CommentHandler) UndeleteComment(c *gin.Context) {
	commentID, ok := util.ParseID(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	result, err := s.areaSvc.UndeleteComment(c.Request.Context(), middleware.CurrentViewer(c), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// HasComments 强制评论开启时，当前用户是否已留下未删除的评论
func (s *CommentHandler) HasComments(c *gin.Context) {
	questionID, ok := util.ParseID(c.Param("question_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	exists, err := s.areaSvc.HasComments(c.Request.Context(), middleware.CurrentViewer(c), questionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.HasCommentsDTO{Exists: exists})
}

func (s *CommentHandler) GetSortFeatures(c *gin.Context) {
	questionID, ok := util.ParseID(c.Param("question_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	features, err := s.areaSvc.GetSortFeatures(c.Request.Context(), middleware.CurrentViewer(c), questionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, features)
}

// SetSortFeature 非法取值会回落到默认排序
func (s *CommentHandler) SetSortFeature(c *gin.Context) {
	questionID, ok := util.ParseID(c.Param("question_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.SortFeatureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	features, err := s.areaSvc.SetSortFeature(c.Request.Context(), middleware.CurrentViewer(c), questionID, req.Feature)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, features)
}

func (s *CommentHandler) ReportComment(c *gin.Context) {
	commentID, ok := util.ParseID(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.CommentReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.areaSvc.ReportComment(c.Request.Context(), middleware.CurrentViewer(c), commentID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
