package handler

import (
	"StudentQuiz/internal/api/dto"
	"StudentQuiz/internal/pkg/commentarea"
	"StudentQuiz/internal/pkg/consts"
	"StudentQuiz/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAreaService struct {
	service.CommentAreaService

	viewer   commentarea.Viewer
	limit    int
	sortHint string
	created  *dto.CommentCreateDTO
	deleteFn func(id uint64) (*dto.CommentActionResultDTO, error)
	err      error
}

func (f *fakeAreaService) DefaultNumberToShow() int { return 5 }

func (f *fakeAreaService) GetComments(_ context.Context, viewer commentarea.Viewer, _ uint64, limit int, sortHint string) (*dto.CommentListDTO, error) {
	f.viewer, f.limit, f.sortHint = viewer, limit, sortHint
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CommentListDTO{Comments: []*dto.CommentDTO{{ID: 1}}, Total: 1, SortFeature: "date_asc"}, nil
}

func (f *fakeAreaService) ExpandComment(_ context.Context, _ commentarea.Viewer, id uint64) (*dto.CommentDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CommentDTO{ID: id}, nil
}

func (f *fakeAreaService) CreateComment(_ context.Context, _ commentarea.Viewer, _ uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CommentDTO{ID: 10, ParentID: req.ReplyTo}, nil
}

func (f *fakeAreaService) DeleteComment(_ context.Context, _ commentarea.Viewer, id uint64) (*dto.CommentActionResultDTO, error) {
	return f.deleteFn(id)
}

func (f *fakeAreaService) ReportComment(_ context.Context, _ commentarea.Viewer, _ uint64, _ *dto.CommentReportDTO) error {
	return f.err
}

func newCommentRouter(svc service.CommentAreaService) *gin.Engine {
	h := NewCommentHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint64(5))
		c.Set("roles", []string{consts.RoleManager})
		c.Next()
	})
	r.GET("/questions/:question_id/comments", h.GetComments)
	r.POST("/questions/:question_id/comments", h.CreateComment)
	r.GET("/comments/:comment_id", h.ExpandComment)
	r.DELETE("/comments/:comment_id", h.DeleteComment)
	r.POST("/comments/:comment_id/report", h.ReportComment)
	return r
}

func do(r *gin.Engine, method, path, body string) dto.Response {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestGetCommentsParsesQuery(t *testing.T) {
	svc := &fakeAreaService{}
	r := newCommentRouter(svc)

	resp := do(r, http.MethodGet, "/questions/3/comments?sort=date_desc", "")
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, 5, svc.limit)
	assert.Equal(t, "date_desc", svc.sortHint)
	assert.Equal(t, commentarea.Viewer{UserID: 5, IsModerator: true, CanUnhideAnonymous: true}, svc.viewer)

	do(r, http.MethodGet, "/questions/3/comments?limit=0", "")
	assert.Equal(t, commentarea.ShowAll, svc.limit)

	resp = do(r, http.MethodGet, "/questions/3/comments?limit=-1", "")
	assert.Equal(t, 400, resp.Code)
	resp = do(r, http.MethodGet, "/questions/abc/comments", "")
	assert.Equal(t, 400, resp.Code)
}

func TestCreateCommentValidation(t *testing.T) {
	svc := &fakeAreaService{}
	r := newCommentRouter(svc)

	resp := do(r, http.MethodPost, "/questions/3/comments", `{"replyto":0,"message":{"text":""}}`)
	assert.Equal(t, 400, resp.Code)
	assert.Nil(t, svc.created)

	resp = do(r, http.MethodPost, "/questions/3/comments", `{"replyto":0,"message":{"text":"hi","format":3}}`)
	assert.Equal(t, 400, resp.Code)

	resp = do(r, http.MethodPost, "/questions/3/comments", `{"replyto":8,"message":{"text":"hi"}}`)
	require.Equal(t, 200, resp.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, uint64(8), svc.created.ReplyTo)
	assert.Equal(t, 1, svc.created.Message.Format)
}

func TestServiceErrorsMapToCodes(t *testing.T) {
	svc := &fakeAreaService{err: service.ErrCommentNotFound}
	r := newCommentRouter(svc)

	resp := do(r, http.MethodGet, "/comments/9", "")
	assert.Equal(t, 404, resp.Code)

	svc.err = &commentarea.DenialError{Op: "report", Reason: commentarea.ReasonReportOwnComment}
	resp = do(r, http.MethodPost, "/comments/9/report", `{"conditions":[1]}`)
	assert.Equal(t, 403, resp.Code)
	assert.Equal(t, commentarea.ReasonReportOwnComment, resp.Message)

	resp = do(r, http.MethodPost, "/comments/9/report", `{"conditions":[7]}`)
	assert.Equal(t, 400, resp.Code)
}

func TestDeleteCommentDenialIsNotAnError(t *testing.T) {
	svc := &fakeAreaService{deleteFn: func(uint64) (*dto.CommentActionResultDTO, error) {
		return &dto.CommentActionResultDTO{Success: false, Message: commentarea.ReasonNotCreator}, nil
	}}
	r := newCommentRouter(svc)

	resp := do(r, http.MethodDelete, "/comments/9", "")
	assert.Equal(t, 200, resp.Code)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["success"])
	assert.Equal(t, commentarea.ReasonNotCreator, data["message"])
}
