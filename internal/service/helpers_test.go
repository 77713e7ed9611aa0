package service

import (
	"StudentQuiz/internal/api/config"
	"StudentQuiz/internal/model"
	"StudentQuiz/internal/pkg/commentarea"
	"StudentQuiz/internal/pkg/database"
	"StudentQuiz/internal/pkg/kafka"
	"StudentQuiz/internal/pkg/metrics"
	"StudentQuiz/internal/repository"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      database.DriverSQLite,
		DSN:         ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*kafka.CommentEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *kafka.CommentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

var fixtureNow = time.Unix(1_700_000_000, 0)

type fixture struct {
	db       *gorm.DB
	svc      CommentAreaService
	impl     *commentAreaServiceImpl
	cache    *memCache
	pub      *recordingPublisher
	registry *prometheus.Registry
	question *model.Question
	alice    commentarea.Viewer
	bob      commentarea.Viewer
	mod      commentarea.Viewer
}

func newFixture(t *testing.T, sq model.StudentQuiz) *fixture {
	t.Helper()
	db := newTestDB(t)

	sq.Name = "Algebra"
	require.NoError(t, db.Create(&sq).Error)
	question := &model.Question{StudentQuizID: sq.ID, Name: "Q1"}
	require.NoError(t, db.Create(question).Error)

	alice := &model.User{FirstName: "Alice", LastName: "Zhang"}
	bob := &model.User{FirstName: "Bob", LastName: "Li"}
	mod := &model.User{FirstName: "Mia", LastName: "Moderator"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)
	require.NoError(t, db.Create(mod).Error)

	sqSvc, err := NewStudentQuizService(repository.NewStudentQuizRepo(db), 16, time.Minute)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	m, err := metrics.NewCommentMetrics(registry)
	require.NoError(t, err)

	cache := newMemCache()
	pub := &recordingPublisher{}
	svc := NewCommentAreaService(
		repository.NewCommentRepo(db),
		repository.NewUserRepo(db),
		repository.NewPreferenceRepo(db),
		repository.NewReportRepo(db),
		sqSvc,
		cache,
		pub,
		m,
		CommentAreaOptions{SiteURL: "https://quiz.example.com"},
	)
	impl := svc.(*commentAreaServiceImpl)
	impl.now = func() time.Time { return fixtureNow }

	return &fixture{
		db:       db,
		svc:      svc,
		impl:     impl,
		cache:    cache,
		pub:      pub,
		registry: registry,
		question: question,
		alice:    commentarea.Viewer{UserID: alice.ID},
		bob:      commentarea.Viewer{UserID: bob.ID},
		mod:      commentarea.Viewer{UserID: mod.ID, IsModerator: true},
	}
}

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
