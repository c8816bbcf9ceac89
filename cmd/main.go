package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	contactapp "github.com/olekhymko/contacts-api/application/contact"
	userapp "github.com/olekhymko/contacts-api/application/user"
	"github.com/olekhymko/contacts-api/cmd/config"
	redisclient "github.com/olekhymko/contacts-api/cmd/redis"
	_ "github.com/olekhymko/contacts-api/docs"
	contactRepo "github.com/olekhymko/contacts-api/repository/contact"
	redisRepo "github.com/olekhymko/contacts-api/repository/redis"
	txRepo "github.com/olekhymko/contacts-api/repository/tx"
	userRepo "github.com/olekhymko/contacts-api/repository/user"
	"github.com/olekhymko/contacts-api/thirdparty/rabbitmq"
	"github.com/olekhymko/contacts-api/transport"
	"github.com/olekhymko/contacts-api/utils/logger"
	"go.uber.org/zap"
)

// @title CONTACTS API
// @version 1.0
// @description Personal address book API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Connect to RabbitMQ; registration works without it, confirmation mails
	// just will not be queued
	var confirmationPublisher userapp.ConfirmationPublisher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, confirmation mails disabled", zap.Error(err))
	} else {
		defer publisher.Close()
		confirmationPublisher = publisher
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	ContactRepo := contactRepo.NewContactRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo, confirmationPublisher)
	ContactApp := contactapp.NewContactApp(TxRepo, ContactRepo)

	httpTransport := transport.NewTransport(cfg, UserApp, ContactApp, RedisRepo)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
