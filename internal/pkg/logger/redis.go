package logger

import (
	"context"
	"errors"
	log "log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisSlow = 100 * time.Millisecond

// RedisLoggerHook 只记录失败和慢命令，缓存未命中不算错误
type RedisLoggerHook struct {
	slow time.Duration
}

func NewRedisLogger(slow time.Duration) *RedisLoggerHook {
	if slow <= 0 {
		slow = defaultRedisSlow
	}
	return &RedisLoggerHook{slow: slow}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error", "addr", addr, "latency", time.Since(start), "err", err)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		// 老版本 redis 不支持 CLIENT SETINFO，握手失败可忽略
		if cmd.Name() == "client" {
			return err
		}
		s.report(ctx, "Redis", time.Since(start), err, "command", cmd.Name(), "key", commandKey(cmd))
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		s.report(ctx, "Redis Pipeline", time.Since(start), err, "cmd_count", len(cmds))
		return err
	}
}

func (s *RedisLoggerHook) report(ctx context.Context, msg string, elapsed time.Duration, err error, attrs ...any) {
	attrs = append(attrs, "latency", elapsed)
	switch {
	case err != nil && !errors.Is(err, redis.Nil) && err.Error() != "ERR no such key":
		log.ErrorContext(ctx, msg+" Error", append(attrs, "err", err)...)
	case elapsed > s.slow:
		log.WarnContext(ctx, msg+" Slow", attrs...)
	}
}

// commandKey 只输出 key，值里可能有用户偏好等数据
func commandKey(cmd redis.Cmder) string {
	switch cmd.Name() {
	case "auth", "hello":
		return ""
	}
	if args := cmd.Args(); len(args) > 1 {
		if key, ok := args[1].(string); ok {
			return key
		}
	}
	return ""
}
