package api

import (
	"StudentQuiz/internal/api/handler"
	"net/http"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler        *handler.UserHandler
	CommentHandler     *handler.CommentHandler
	StudentQuizHandler *handler.StudentQuizHandler
	MetricsHandler     http.Handler
}
