package database

import (
	"StudentQuiz/internal/api/config"
	"StudentQuiz/internal/model"
	"StudentQuiz/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// NewGormDB 初始化并返回 *gorm.DB 实例，处理连接池配置
// sqlite 仅用于本地开发与测试，连接数固定为 1
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	var (
		dialector gorm.Dialector
		dialect   string
	)
	maxIdle, maxOpen := cfg.MaxIdle, cfg.MaxOpen
	switch cfg.Driver {
	case "", DriverMySQL:
		dialector, dialect = mysql.Open(cfg.DSN), "MySQL"
	case DriverSQLite:
		dialector, dialect = sqlite.Open(cfg.DSN), "SQLite"
		maxIdle, maxOpen = 1, 1
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(dialect),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	if cfg.AutoMigrate {
		if err = Migrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate failed: %w", err)
		}
	}

	log.Info("Database connection established successfully.", "driver", dialect)
	return db, nil
}

// Migrate 同步评论区相关表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.StudentQuiz{},
		&model.Question{},
		&model.Comment{},
		&model.UserPreference{},
		&model.CommentReport{},
	)
}
