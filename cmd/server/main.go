package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tujenge.backend/internal/config"
	"tujenge.backend/internal/infrastructure/jobs"
	"tujenge.backend/internal/infrastructure/repositories"
	"tujenge.backend/internal/interfaces/http/handlers"
	"tujenge.backend/internal/interfaces/http/middleware"
	"tujenge.backend/internal/usecases"
	"tujenge.backend/pkg/jwt"
	"tujenge.backend/pkg/logger"
	"tujenge.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	productRepo := repositories.NewLoanProductRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	scheduleRepo := repositories.NewLoanScheduleRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	auditUsecase := usecases.NewAuditUsecase(auditRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, auditUsecase, jwtService)
	customerUsecase := usecases.NewCustomerUsecase(customerRepo, documentRepo, loanRepo, auditUsecase, uow,
		cfg.Loan.MaxActiveLoans, cfg.Loan.MaxAmount, cfg.NIDA.CacheTTL)
	documentUsecase := usecases.NewDocumentUsecase(documentRepo, customerRepo, auditUsecase)
	productUsecase := usecases.NewLoanProductUsecase(productRepo, auditUsecase, cfg.Loan.MaxTenureMonths)
	loanUsecase := usecases.NewLoanUsecase(loanRepo, scheduleRepo, productRepo, customerRepo, transactionRepo,
		customerUsecase, auditUsecase, uow, cfg.Loan.MinAmount, cfg.Loan.MaxAmount)
	transactionUsecase := usecases.NewTransactionUsecase(transactionRepo, loanRepo, auditUsecase, uow)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	customerHandler := handlers.NewCustomerHandler(customerUsecase)
	documentHandler := handlers.NewDocumentHandler(documentUsecase)
	productHandler := handlers.NewLoanProductHandler(productUsecase)
	loanHandler := handlers.NewLoanHandler(loanUsecase)
	transactionHandler := handlers.NewTransactionHandler(transactionUsecase)
	auditHandler := handlers.NewAuditHandler(auditUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	overdueJob := jobs.NewLoanOverdueJob(loanUsecase, cfg.Jobs.OverdueSchedule)
	if err := overdueJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue job: %w", err)
	}

	expiryJob := jobs.NewApplicationExpiryJob(loanUsecase, cfg.Jobs.ApplicationMaxAge)
	go expiryJob.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:        authHandler,
		customerHandler:    customerHandler,
		documentHandler:    documentHandler,
		productHandler:     productHandler,
		loanHandler:        loanHandler,
		transactionHandler: transactionHandler,
		auditHandler:       auditHandler,
		authMiddleware:     authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		overdueJob.Stop()
		expiryJob.Stop()
		cancel()
	}()

	logger.Info(context.Background(), "Tujenge backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("health", "/health"),
		zap.String("metrics", "/metrics"))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
