//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"roompush/internal/app"
	"roompush/internal/config"
	"roompush/internal/fcm"
	"roompush/internal/http"
	"roompush/internal/http/controller"
	"roompush/internal/logging"
	"roompush/internal/queue/rabbitmq"
	"roompush/internal/roomdir"
	"roompush/internal/service/dispatch"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		roomdir.NewDirectory,
		fcm.NewMinter,
		fcm.NewClient,
		wire.Bind(new(dispatch.TokenMinter), new(*fcm.Minter)),
		wire.Bind(new(dispatch.Sender), new(*fcm.Client)),
		dispatch.NewService,
		rabbitmq.NewPublisher,
		controller.NewHandler,
		http.NewRouter,
		rabbitmq.NewConsumer,
		app.NewApp,
	)
	return &app.App{}, nil
}
