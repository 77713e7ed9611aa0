package service

import (
	"StudentQuiz/internal/pkg/consts"
	"StudentQuiz/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

const preferenceTTL = 24 * time.Hour

// cachedPreferences 用户偏好的旁路缓存
type cachedPreferences struct {
	repo  repository.PreferenceRepo
	cache Cache
}

func (p *cachedPreferences) GetPreference(ctx context.Context, userID uint64, name string) (string, error) {
	key := preferenceKey(userID, name)
	if value, err := p.cache.Get(ctx, key); err == nil && value != "" {
		return value, nil
	} else if err != nil {
		log.WarnContext(ctx, "read preference cache failed", "key", key, "err", err)
	}

	value, err := p.repo.GetPreference(ctx, userID, name)
	if err != nil {
		return "", err
	}
	if value != "" {
		if err = p.cache.Set(ctx, key, value, preferenceTTL); err != nil {
			log.WarnContext(ctx, "write preference cache failed", "key", key, "err", err)
		}
	}
	return value, nil
}

func (p *cachedPreferences) SetPreference(ctx context.Context, userID uint64, name string, value string) error {
	if err := p.repo.SetPreference(ctx, userID, name, value); err != nil {
		return err
	}
	return p.cache.Delete(ctx, preferenceKey(userID, name))
}

func preferenceKey(userID uint64, name string) string {
	return consts.UserPreferenceKey + strconv.FormatUint(userID, 10) + ":" + name
}
