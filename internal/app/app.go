package app

import (
	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/controller"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"
	"campus_lms_backend/pkg/database"
	"campus_lms_backend/pkg/logger"
	"campus_lms_backend/pkg/monitoring"
	"campus_lms_backend/pkg/security"
	"campus_lms_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	role         *repository.RoleRepository
	academic     *repository.AcademicRepository
	enrollment   *repository.EnrollmentRepository
	quiz         *repository.QuizRepository
	attempt      *repository.AttemptRepository
	resource     *repository.ResourceRepository
	notification *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	permission   *service.PermissionService
	academic     *service.AcademicService
	enrollment   *service.EnrollmentService
	quiz         *service.QuizService
	attempt      *service.AttemptService
	grade        *service.GradeService
	storage      *service.StorageService
	resource     *service.ResourceService
	notification *service.NotificationService
	ai           *service.AIService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	academic     *controller.AcademicController
	enrollment   *controller.EnrollmentController
	quiz         *controller.QuizController
	attempt      *controller.AttemptController
	grade        *controller.GradeController
	resource     *controller.ResourceController
	notification *controller.NotificationController
	role         *controller.RoleController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		role:         repository.NewRoleRepository(db),
		academic:     repository.NewAcademicRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		quiz:         repository.NewQuizRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		resource:     repository.NewResourceRepository(db),
		notification: repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.permission = service.NewPermissionService(repos.role)
	s.academic = service.NewAcademicService(repos.academic)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.academic)
	s.notification = service.NewNotificationService(repos.notification, rdb)
	s.ai = service.NewAIService(cfg.AI)
	s.quiz = service.NewQuizService(repos.quiz, repos.enrollment, s.notification, s.ai)
	s.attempt = service.NewAttemptService(repos.quiz, repos.attempt, repos.enrollment)
	s.grade = service.NewGradeService(repos.attempt, repos.quiz)
	s.resource = service.NewResourceService(repos.resource, repos.academic, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		academic:     controller.NewAcademicController(s.academic),
		enrollment:   controller.NewEnrollmentController(s.enrollment),
		quiz:         controller.NewQuizController(s.quiz),
		attempt:      controller.NewAttemptController(s.attempt),
		grade:        controller.NewGradeController(s.grade),
		resource:     controller.NewResourceController(s.resource),
		notification: controller.NewNotificationController(s.notification),
		role:         controller.NewRoleController(s.permission),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	router.Use(security.RateLimiter(cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定期把过了结束时间的测验置为 CLOSED
func (a *App) startBackgroundTasks(repos *repositories) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			n, err := repos.quiz.CloseExpiredQuizzes(time.Now())
			if err != nil {
				logger.Log.Error("close expired quizzes", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Log.Info("closed expired quizzes", zap.Int64("count", n))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("campus-lms", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(repos)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
