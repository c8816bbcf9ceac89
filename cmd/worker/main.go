package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekhymko/contacts-api/cmd/config"
	"github.com/olekhymko/contacts-api/thirdparty/rabbitmq"
	"github.com/olekhymko/contacts-api/utils/logger"
	"go.uber.org/zap"
)

// Confirmation-mail worker: drains the email_confirmation queue filled by
// the API on registration.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	baseURL := "http://localhost:" + cfg.Server.Port
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, baseURL)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("confirmation worker running")
	if err := consumer.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
