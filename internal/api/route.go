package api

import (
	"StudentQuiz/internal/api/config"
	"StudentQuiz/internal/api/middleware"
	"StudentQuiz/internal/pkg/consts"
	"StudentQuiz/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/metrics"))
	r.Use(middleware.CORSMiddleware(config.Cfg.Server.AllowOrigins))
	r.Use(middleware.BaseURLMiddleware())
	logger.SetupGin(r)

	if group.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(group.MetricsHandler))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/login", group.UserHandler.Login)
		}

		questionGroup := apiGroup.Group("/questions/:question_id")
		questionGroup.Use(middleware.AuthMiddleware())
		{
			questionGroup.GET("/comments", group.CommentHandler.GetComments)
			questionGroup.POST("/comments", group.CommentHandler.CreateComment)
			questionGroup.GET("/comments/exists", group.CommentHandler.HasComments)
			questionGroup.GET("/sort-features", group.CommentHandler.GetSortFeatures)
			questionGroup.PUT("/sort-feature", group.CommentHandler.SetSortFeature)
		}

		commentGroup := apiGroup.Group("/comments/:comment_id")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.GET("", group.CommentHandler.ExpandComment)
			commentGroup.DELETE("", group.CommentHandler.DeleteComment)
			commentGroup.POST("/undelete", group.CommentHandler.UndeleteComment)
			commentGroup.POST("/report", group.CommentHandler.ReportComment)
		}

		sqGroup := apiGroup.Group("/studentquiz/:studentquiz_id")
		sqGroup.Use(middleware.AuthMiddleware())
		{
			sqGroup.GET("/settings", group.StudentQuizHandler.GetSettings)

			// 需要登录 & 拥有 MANAGER 角色
			managerGroup := sqGroup.Group("")
			managerGroup.Use(middleware.CheckRoles(consts.RoleManager))
			{
				managerGroup.PUT("/settings", group.StudentQuizHandler.UpdateSettings)
			}
		}
	}

	return r
}
