package handler

import (
	"StudentQuiz/internal/api/dto"
	"StudentQuiz/internal/pkg/response"
	"StudentQuiz/internal/pkg/util"
	"StudentQuiz/internal/service"

	"github.com/gin-gonic/gin"
)

type StudentQuizHandler struct {
	sqSvc service.StudentQuizService
}

func NewStudentQuizHandler(sqSvc service.StudentQuizService) *StudentQuizHandler {
	return &StudentQuizHandler{
		sqSvc: sqSvc,
	}
}

func (s *StudentQuizHandler) GetSettings(c *gin.Context) {
	id, ok := util.ParseID(c.Param("studentquiz_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	settings, err := s.sqSvc.GetSettings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings 仅管理员可修改匿名与强制评论等设置
func (s *StudentQuizHandler) UpdateSettings(c *gin.Context) {
	id, ok := util.ParseID(c.Param("studentquiz_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.StudentQuizSettingsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	settings, err := s.sqSvc.UpdateSettings(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}
