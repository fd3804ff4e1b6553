package bootstrap

import (
	"context"
	"log"
	"time"

	"ref-intake-be/internal/config"
	"ref-intake-be/internal/controller"
	"ref-intake-be/internal/handler"
	"ref-intake-be/internal/pkg/logger"
	"ref-intake-be/internal/pkg/mailer"
	"ref-intake-be/internal/pkg/serverutils"
	"ref-intake-be/internal/repository/contract"
	"ref-intake-be/internal/repository/memory"
	"ref-intake-be/internal/repository/rediscache"
	"ref-intake-be/internal/repository/unitofwork"
	"ref-intake-be/internal/service"
	"ref-intake-be/internal/websocket"
	"ref-intake-be/pkg/intake/engine"
	"ref-intake-be/pkg/intake/phrase"

	pktNats "ref-intake-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	IntakeController     controller.IIntakeController
	FormController       controller.IFormController
	SubmissionController controller.ISubmissionController
	AuthController       controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS is optional; without it submission events stay in-process.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Redis is optional; without it the session cache is instance-local and
	// the websocket hub serves this instance only.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
			rdb = nil
		}
	}

	cacheTTL := time.Duration(cfg.Intake.SessionCacheTTLMinutes) * time.Minute
	var sessionCache contract.SessionCache
	if rdb != nil {
		sessionCache = rediscache.NewSessionCache(rdb, cacheTTL)
		log.Println("[INFO] Using Redis session cache")
	} else {
		sessionCache = memory.NewSessionCache(cacheTTL)
		log.Println("[INFO] Using in-memory session cache")
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 3. Services
	eng := engine.New(phrase.NewRandom(time.Now().UnixNano()))

	formService := service.NewFormService(uowFactory)
	publisherService := service.NewPublisherService(pubSub, cfg.Intake.SubmissionTopic)
	intakeService := service.NewIntakeService(uowFactory, sessionCache, formService, publisherService, eng, sysLogger)
	submissionService := service.NewSubmissionService(uowFactory)
	authService := service.NewAuthService(cfg.Auth)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Intake.SubmissionTopic,
		uowFactory,
		emailService,
		wsHub,
		natsPub,
	)

	// 4. Controllers
	jwtGuard := serverutils.JwtMiddleware(cfg.Auth.JwtSecret)

	return &Container{
		IntakeController:     controller.NewIntakeController(intakeService),
		FormController:       controller.NewFormController(formService, jwtGuard),
		SubmissionController: controller.NewSubmissionController(submissionService, jwtGuard),
		AuthController:       controller.NewAuthController(authService),
		ConsumerService:      consumerService,
		NotificationHandler:  handler.NewNotificationHandler(wsHub, cfg.Auth.JwtSecret, sysLogger),
		WebSocketHub:         wsHub,
		Logger:               sysLogger,
	}
}
