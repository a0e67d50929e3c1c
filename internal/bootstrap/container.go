package bootstrap

import (
	"context"
	"path/filepath"

	"docchat-be/internal/config"
	"docchat-be/internal/controller"
	"docchat-be/internal/handler"
	"docchat-be/internal/metrics"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/internal/service"
	"docchat-be/internal/websocket"
	"docchat-be/pkg/access"
	"docchat-be/pkg/events"
	pktNats "docchat-be/pkg/nats"
	"docchat-be/pkg/qa"
	"docchat-be/pkg/session"
	"docchat-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	MessageController   controller.IMessageController
	AssistantController controller.IAssistantController
	RealtimeHandler     *handler.RealtimeHandler

	// Shared infrastructure
	SessionManager *session.Manager
	Metrics        *metrics.Metrics
	Logger         logger.ILogger
	WebSocketHub   *websocket.Hub

	// Background services, started by Start
	ConsumerService service.IConsumerService
	ActivityService *service.ActivityService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	gate := access.NewGate()
	c.Metrics = metrics.New()
	c.SessionManager = session.NewManager(uowFactory, session.Options{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.IsProduction(),
	})

	// 2. In-process action bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Optional infrastructure
	var eventPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			c.ActivityService = service.NewActivityService(natsSub, sysLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var archive service.DocumentArchive
	if cfg.Storage.Endpoint != "" {
		store, err := storage.New(storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
		})
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to initialize document storage", map[string]interface{}{"error": err.Error()})
		} else if err := store.EnsureBucket(context.Background()); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to ensure document bucket", map[string]interface{}{"error": err.Error()})
		} else {
			archive = store
		}
	}

	// 4. Realtime
	hubLogger := sysLogger
	if cfg.App.LogFilePath != "" {
		hubLogger = logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "websocket.log"))
	}
	c.WebSocketHub = websocket.NewHub(rdb, hubLogger)
	publisherService := service.NewPublisherService(cfg.App.ActionTopic, pubSub, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.ActionTopic, c.WebSocketHub, sysLogger)

	// 5. Services
	qaClient := qa.NewClient(cfg.QA.BaseURL, cfg.QA.Timeout)

	authService := service.NewAuthService(uowFactory, c.SessionManager, eventPublisher, sysLogger)
	chatService := service.NewChatService(uowFactory, gate, publisherService, eventPublisher, sysLogger)
	messageService := service.NewMessageService(uowFactory, gate, qaClient, c.Metrics, publisherService, sysLogger)
	assistantService := service.NewAssistantService(uowFactory, gate, qaClient, c.Metrics, archive, publisherService, eventPublisher, sysLogger)

	// 6. Controllers
	c.AuthController = controller.NewAuthController(authService, c.SessionManager)
	c.ChatController = controller.NewChatController(chatService)
	c.MessageController = controller.NewMessageController(messageService)
	c.AssistantController = controller.NewAssistantController(assistantService)
	c.RealtimeHandler = handler.NewRealtimeHandler(c.WebSocketHub, sysLogger)

	return c
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}

	if c.ActivityService != nil {
		if err := c.ActivityService.Start(ctx); err != nil {
			c.Logger.Warn("Bootstrap", "Activity log disabled", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
