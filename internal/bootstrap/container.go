package bootstrap

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"nestle-in-be/internal/config"
	"nestle-in-be/internal/controller"
	"nestle-in-be/internal/pkg/logger"
	"nestle-in-be/internal/pkg/mailer"
	"nestle-in-be/internal/repository/unitofwork"
	"nestle-in-be/internal/service"
	pktNats "nestle-in-be/pkg/nats"
	"nestle-in-be/pkg/rawlog"
	"nestle-in-be/pkg/responder"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	PodController  controller.IPodController
	AuthController controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

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
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS: the server runs fine without a reachable broker, events are
	// simply dropped.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}
	rawlogStore := rawlog.NewStore(rdb)

	// In-memory pod listing cache
	podCacheTTL := time.Duration(cfg.Chat.PodCacheTTLSeconds) * time.Second
	podCache := gocache.New(podCacheTTL, 2*podCacheTTL)

	// 3. Services
	rsp := responder.New(cfg.Chat.ResponderMode)
	log.Printf("[INFO] Using responder mode: %s", cfg.Chat.ResponderMode)

	publisherService := service.NewPublisherService(pubSub, cfg.Chat.MessageLogTopic)

	rawlogLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "rawlog.log"))
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Chat.MessageLogTopic,
		rawlogStore,
		rawlogLogger,
	)

	chatService := service.NewChatService(uowFactory, rsp, publisherService, natsPub, sysLogger)
	podService := service.NewPodService(uowFactory, podCache, natsPub, sysLogger)
	authService := service.NewAuthService(uowFactory, emailService, sysLogger)

	// 4. Controllers
	return &Container{
		ChatController: controller.NewChatController(chatService),
		PodController:  controller.NewPodController(podService),
		AuthController: controller.NewAuthController(authService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
