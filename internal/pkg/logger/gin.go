package logger

import (
	"StudentQuiz/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id,omitempty"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	UserID      uint64 `json:"user_id,omitempty"`
	ClientIP    string `json:"client_ip"`
	BodySize    int    `json:"body_size"`
	Latency     string `json:"latency"`
	Error       string `json:"error,omitempty"`
}

// SetupGin 访问日志与 slog 输出同一格式，便于 Logstash 统一入索引
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		Formatter: formatAccess,
	}))
	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams) string {
	line := accessLine{
		Time:        p.TimeStamp.Format(time.RFC3339),
		Level:       "INFO",
		Msg:         "GIN_ACCESS",
		LogToken:    config.Cfg.Logstash.Token,
		TargetIndex: config.Cfg.Logstash.Index,
		Method:      p.Method,
		Path:        p.Path,
		Status:      p.StatusCode,
		ClientIP:    p.ClientIP,
		BodySize:    p.BodySize,
		Latency:     p.Latency.String(),
		Error:       p.ErrorMessage,
	}
	if p.StatusCode >= 500 {
		line.Level = "ERROR"
	}
	if p.Keys != nil {
		line.TraceID, _ = p.Keys[TraceIDKey].(string)
		line.UserID, _ = p.Keys[UserIDKey].(uint64)
	}
	if line.TraceID == "" && p.Request != nil {
		line.TraceID, _ = p.Request.Context().Value(TraceIDKey).(string)
	}

	b, err := json.Marshal(line)
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}
