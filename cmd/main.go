package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/aegis-safety/backend/config"
	"github.com/aegis-safety/backend/internal/handler"
	"github.com/aegis-safety/backend/internal/middleware"
	"github.com/aegis-safety/backend/internal/repository"
	"github.com/aegis-safety/backend/internal/router"
	"github.com/aegis-safety/backend/internal/service"
	"github.com/aegis-safety/backend/pkg/clock"
	"github.com/aegis-safety/backend/pkg/database"
	"github.com/aegis-safety/backend/pkg/logger"
	"github.com/aegis-safety/backend/pkg/mailer"
	"github.com/aegis-safety/backend/pkg/redis"
	"github.com/aegis-safety/backend/pkg/validation"
	"github.com/aegis-safety/backend/pkg/workpool"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", version),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrated successfully")

	// The rate limiter fails open without redis, so a connection
	// failure degrades the service instead of blocking startup.
	redisClient, err := redis.NewClient(redis.Config{
		Addr:         config.RedisAddress(),
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, log)
	if err != nil {
		log.Error("Redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	hashPool := workpool.New(config.Security.HashWorkers, log)
	defer hashPool.Close()

	mailSender, err := mailer.NewSMTPSender(mailer.Config{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		Username: config.SMTP.Username,
		Password: config.SMTP.Password,
		From:     config.SMTP.From,
		FromName: config.App.Name,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	if err := validation.RegisterCustomValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	accountRepo := repository.NewAccountRepository(db)

	clk := clock.NewReal()
	hasher := service.NewPasswordHasher(config.Security.BcryptCost, hashPool)
	tokens := service.NewTokenGenerator(clk)
	issuer := service.NewTokenIssuer(config.JWT.Secret, config.JWT.SessionTTL, clk)
	lockout := service.NewLockoutPolicy(config.Security.LockoutThreshold, config.Security.LockoutDuration)
	twoFactor := service.NewTwoFactorService(config.Security.TwoFactorIssuer, config.Security.EncryptionSecret, clk)

	authService := service.NewAuthService(
		accountRepo,
		hasher,
		tokens,
		issuer,
		lockout,
		twoFactor,
		mailSender,
		clk,
		service.AuthConfig{
			BaseURL:              config.App.BaseURL,
			ResetTokenTTL:        config.Security.ResetTokenTTL,
			VerificationTokenTTL: config.Security.VerificationTokenTTL,
		},
	)
	accountService := service.NewAccountService(accountRepo)

	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	twoFactorHandler := handler.NewTwoFactorHandler(authService)
	healthHandler := handler.NewHealthHandler(db, redisClient, version)

	jwtMiddleware := middleware.NewJWTMiddleware(issuer, accountRepo)

	engine := router.NewRouter(
		authHandler,
		accountHandler,
		twoFactorHandler,
		healthHandler,
		jwtMiddleware,
		redisClient,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:    ":" + config.App.Port,
		Handler: engine,
	}

	go func() {
		log.Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	stop()

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
