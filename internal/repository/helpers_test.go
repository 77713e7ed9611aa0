package repository

import (
	"StudentQuiz/internal/api/config"
	"StudentQuiz/internal/model"
	"StudentQuiz/internal/pkg/database"
	"testing"

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

func seedUser(t *testing.T, db *gorm.DB, first, last string) *model.User {
	t.Helper()
	u := &model.User{FirstName: first, LastName: last}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedComment(t *testing.T, db *gorm.DB, c model.Comment) *model.Comment {
	t.Helper()
	require.NoError(t, db.Create(&c).Error)
	return &c
}

func ids(comments []*model.Comment) []uint64 {
	out := make([]uint64, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}
