package bootstrap

import (
	"log"
	"time"

	"github.com/KhadijaXD/NoteNova/internal/config"
	"github.com/KhadijaXD/NoteNova/internal/controller"
	"github.com/KhadijaXD/NoteNova/internal/pkg/logger"
	"github.com/KhadijaXD/NoteNova/internal/repository/unitofwork"
	"github.com/KhadijaXD/NoteNova/internal/service"
	"github.com/KhadijaXD/NoteNova/pkg/llm"
	"github.com/KhadijaXD/NoteNova/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const noteChangedTopic = "note.changed"

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	NoteController   controller.INoteController
	UploadController controller.IUploadController
	MetaController   controller.IMetaController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(pubSub, noteChangedTopic)

	// 3. LLM Provider
	llmProvider, err := factory.NewProvider(&cfg.Ai)
	if err != nil {
		log.Printf("[WARN] LLM provider unavailable: %v", err)
		llmProvider = llm.NoopProvider{}
	}

	// 4. Caches
	flashcardCache := gocache.New(24*time.Hour, time.Hour)
	availabilityCache := gocache.New(5*time.Minute, time.Minute)

	// 5. Services
	aiService := service.NewAiService(llmProvider, flashcardCache, availabilityCache, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret)
	noteService := service.NewNoteService(uowFactory, aiService, publisherService, sysLogger)
	ingestService := service.NewIngestService(uowFactory, aiService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, noteChangedTopic, aiService, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		NoteController:   controller.NewNoteController(noteService),
		UploadController: controller.NewUploadController(ingestService, cfg.Upload.Dir),
		MetaController:   controller.NewMetaController(aiService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
