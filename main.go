package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/carson-networks/pocket-ledger/api"
	"github.com/carson-networks/pocket-ledger/internal/config"
	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/logging"
	"github.com/carson-networks/pocket-ledger/internal/operator"
	"github.com/carson-networks/pocket-ledger/internal/service"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	flag.Parse()

	logger := logging.SetupLogging()
	logger.Info("pocket-ledger starting")

	envConfig, err := config.ProcessEnvironmentVariables(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, envConfig.Log.Level)

	location, err := envConfig.Location()
	if err != nil {
		logger.WithError(err).Fatal("config.Location")
		return
	}

	store, err := storage.NewStorage(envConfig.Ledger.Path, logger)
	if err != nil {
		var persistenceErr *ledger.PersistenceError
		if envConfig.Ledger.Strict || !errors.As(err, &persistenceErr) {
			logger.WithError(err).Fatal("storage.NewStorage")
			return
		}
		logger.WithError(err).Warn("storage.NewStorage.continuing with an empty ledger")
	}

	users := service.NewUserService(0, logger)
	if _, err := users.EnsureDefaultUser(context.Background(), envConfig.Users.DefaultUsername, envConfig.Users.DefaultPassword); err != nil {
		logger.WithError(err).Fatal("service.EnsureDefaultUser")
		return
	}

	op := operator.NewOperatorDelegator(store, envConfig.Operator.Workers, envConfig.Operator.QueueSize, logger)
	op.Start()

	svc := service.NewService(store, op, users, location, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Server.Port,
		Service: svc,
		Storage: store,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("api.Rest.Serve")
	}

	// the HTTP server has drained, so no new actions can arrive
	op.Stop()
	logger.Info("pocket-ledger stopped")
}
