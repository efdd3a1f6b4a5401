package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/threeds-gateway/internal/bootstrap"
	"github.com/cassiomorais/threeds-gateway/internal/controller"
	"github.com/cassiomorais/threeds-gateway/internal/gateway"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "threeds-gateway", "threeds")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	// --- Flow service ---
	forwarder := gateway.NewHTTPForwarder(app.Config.Gateway.Timeout, app.Logger, app.Metrics)
	flows := gateway.NewService(forwarder, app.Logger, app.Metrics, app.Config.Gateway.DefaultAPIVersion)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		ServiceName:        "threeds-gateway",
		Flows:              flows,
		Metrics:            app.Metrics,
		CORSConfig:         app.Config.Server.CORS,
		RateLimitPerMinute: app.Config.Server.RateLimitPerMinute,
		AuthSecret:         app.Config.Server.AuthSecret,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
