package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pong-server/pong"
)

func main() {
	config := MustLoadConfig()
	SetupLogger(config)

	hub := NewHub()
	game := NewGame(hub, pong.DefaultBoard, config.TickInterval())
	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           NewHTTPServer(game, hub, config),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		LogStartedServer(config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			LogServerError(err)
			os.Exit(1)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	LogStoppingServer()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		LogServerError(err)
	}
	game.Stop()
}
