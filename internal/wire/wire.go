package wire

import (
	"StudentQuiz/internal/api"
	"StudentQuiz/internal/api/config"
	"StudentQuiz/internal/api/handler"
	"StudentQuiz/internal/job"
	"StudentQuiz/internal/pkg/cron"
	"StudentQuiz/internal/pkg/kafka"
	"StudentQuiz/internal/pkg/metrics"
	"StudentQuiz/internal/pkg/redis"
	"StudentQuiz/internal/repository"
	"StudentQuiz/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
	Producer     *kafka.CommentEventProducer
}

// BuildApplication 未配置 kafka brokers 时不发送事件，也不启动消费者
func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	sqRepo := repository.NewStudentQuizRepo(db)
	prefRepo := repository.NewPreferenceRepo(db)
	reportRepo := repository.NewReportRepo(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	commentMetrics, err := metrics.NewCommentMetrics(registry)
	if err != nil {
		return nil, err
	}

	store := redis.NewStore(redis.Rdb)

	var (
		producer  *kafka.CommentEventProducer
		publisher service.EventPublisher
		kafkaMgr  *kafka.ConsumerManager
	)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewCommentEventProducer(cfg)
		if err != nil {
			return nil, err
		}
		publisher = producer
		kafkaMgr, err = kafka.NewConsumerManager(cfg, store)
		if err != nil {
			return nil, err
		}
	}

	areaCfg := cfg.CommentArea
	sqService, err := service.NewStudentQuizService(sqRepo, areaCfg.ActivityCacheSize, time.Duration(areaCfg.ActivityCacheTTL)*time.Second)
	if err != nil {
		return nil, err
	}
	userService := service.NewUserService(userRepo, roleRepo)
	areaService := service.NewCommentAreaService(
		commentRepo,
		userRepo,
		prefRepo,
		reportRepo,
		sqService,
		store,
		publisher,
		commentMetrics,
		service.CommentAreaOptions{
			EditableWindow:      time.Duration(areaCfg.EditableWindow) * time.Second,
			ShortenLength:       areaCfg.ShortenLength,
			DefaultNumberToShow: areaCfg.DefaultNumberToShow,
			SiteURL:             areaCfg.SiteURL,
		},
	)

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userService),
		CommentHandler:     handler.NewCommentHandler(areaService),
		StudentQuizHandler: handler.NewStudentQuizHandler(sqService),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}

	router := api.SetupRouter(handlers)

	commentCountJob := job.NewCommentCountJob(store, areaService)
	cronMgr := cron.NewCronManager(commentCountJob, cfg.Cron.CommentCountSpec)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		Producer:     producer,
	}, nil
}
