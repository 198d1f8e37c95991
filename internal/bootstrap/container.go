package bootstrap

import (
	"notetaking-be/internal/config"
	"notetaking-be/internal/controller"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/internal/pkg/token"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	UserController controller.IUserController
	AuthController controller.IAuthController
	NoteController controller.INoteController
	TagController  controller.ITagController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared middleware / infrastructure
	JwtMiddleware fiber.Handler
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	tokenProvider := token.NewProvider(cfg.Jwt)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(cfg.App.NoteEventsTopic, pubSub)

	// 3. Services
	authService := service.NewAuthService(uowFactory, tokenProvider, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)
	tagService := service.NewTagService(uowFactory)
	consumerService := service.NewConsumerService(pubSub, cfg.App.NoteEventsTopic, tagService, sysLogger)

	// 4. Controllers
	userController := controller.NewUserController(authService)
	authController := controller.NewAuthController(authService)
	noteController := controller.NewNoteController(noteService)
	tagController := controller.NewTagController(tagService)

	return &Container{
		UserController:  userController,
		AuthController:  authController,
		NoteController:  noteController,
		TagController:   tagController,
		ConsumerService: consumerService,
		JwtMiddleware:   serverutils.NewJwtMiddleware(cfg.Jwt),
		Logger:          sysLogger,
	}
}
