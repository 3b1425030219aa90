package bootstrap

import (
	"context"

	"medstory-be/internal/config"
	"medstory-be/internal/controller"
	"medstory-be/internal/handler"
	"medstory-be/internal/metrics"
	"medstory-be/internal/notify"
	"medstory-be/internal/pkg/logger"
	"medstory-be/internal/repository/implementation"
	"medstory-be/internal/service"
	"medstory-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Container struct {
	// Controllers
	NoteController     controller.INoteController
	TaxonomyController controller.ITaxonomyController
	UserController     controller.IUserController

	// Services (exposed for tests and tools)
	NoteService service.INoteService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
	UploadRelay         *notify.Relay

	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Logger   logger.ILogger

	pubSub *gochannel.GoChannel
	infra  *Infrastructure
}

func NewContainer(cfg *config.Config, infra *Infrastructure, sysLogger logger.ILogger, wsLogger logger.ILogger) *Container {
	// 1. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)

	// 3. Repositories
	timeout := cfg.App.RemoteTimeout
	noteRepo := implementation.NewNoteRepository(infra.Docs, m, timeout, sysLogger)
	imageRepo := implementation.NewImageRepository(infra.Blobs, m, timeout, cfg.BlobStore.PresignTTL, sysLogger)
	profileRepo := implementation.NewProfileRepository(infra.Docs, m, timeout)

	// 4. Services
	noteService := service.NewNoteService(noteRepo, imageRepo, notify.NewWatermillNotifier(pubSub), sysLogger)
	userService := service.NewUserService(profileRepo)

	// 5. Notification fan-out
	wsHub := websocket.NewHub(infra.Redis, wsLogger)
	var bus notify.EventPublisher
	if infra.Nats != nil {
		bus = infra.Nats
	}
	relay := notify.NewRelay(pubSub, wsHub, bus, sysLogger)

	return &Container{
		NoteController:      controller.NewNoteController(noteService),
		TaxonomyController:  controller.NewTaxonomyController(noteService),
		UserController:      controller.NewUserController(userService),
		NoteService:         noteService,
		NotificationHandler: handler.NewNotificationHandler(wsHub, cfg.Keys.JwtSecret, wsLogger),
		WebSocketHub:        wsHub,
		UploadRelay:         relay,
		Metrics:             m,
		Registry:            registry,
		Logger:              sysLogger,
		pubSub:              pubSub,
		infra:               infra,
	}
}

// Start runs the hub and the upload relay until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.UploadRelay.Run(ctx)
}

func (c *Container) Close(ctx context.Context) error {
	_ = c.pubSub.Close()
	return c.infra.Close(ctx)
}

func (c *Container) DocStoreName() string {
	return c.infra.Docs.Name()
}

func (c *Container) BlobStoreName() string {
	return c.infra.Blobs.Name()
}
