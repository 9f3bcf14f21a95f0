package bootstrap

import (
	"log"
	"time"

	"notepad-api/internal/config"
	"notepad-api/internal/controller"
	"notepad-api/internal/pkg/filestore"
	"notepad-api/internal/pkg/logger"
	"notepad-api/internal/pkg/serverutils"
	"notepad-api/internal/repository/memory"
	"notepad-api/internal/repository/unitofwork"
	"notepad-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	CategoryController controller.ICategoryController
	NoteController     controller.INoteController

	// Shared middleware
	AuthMiddleware fiber.Handler

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	imageStore, err := filestore.NewDiskImageStore(
		cfg.Upload.Dir,
		int64(cfg.Upload.MaxSizeMB)*1024*1024,
		cfg.Upload.AllowedExtensions,
	)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	revokedTokens := memory.NewRevokedTokenStore()

	// 2. Services
	tokenTTL := time.Duration(cfg.Auth.TokenExpiryHours) * time.Hour
	authService := service.NewAuthService(uowFactory, revokedTokens, cfg.Auth.JWTSecret, tokenTTL, sysLogger)
	categoryService := service.NewCategoryService(uowFactory, sysLogger)
	noteService := service.NewNoteService(uowFactory, imageStore, sysLogger)

	// 3. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		CategoryController: controller.NewCategoryController(categoryService),
		NoteController:     controller.NewNoteController(noteService),
		AuthMiddleware:     serverutils.JwtMiddleware(cfg.Auth.JWTSecret, revokedTokens),
		Logger:             sysLogger,
	}
}
