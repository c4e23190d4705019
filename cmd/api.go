package cmd

import (
	"context"
	"sync"

	"github.com/leohubert/go-omdb/internal/health"
	"github.com/leohubert/go-omdb/internal/server"
	"github.com/leohubert/go-omdb/pkg/ostb"
	"go.uber.org/zap"
)

func ApiCmd(ctx context.Context, env *Env, services *Services) {
	ctx, stop := ostb.StopContext(ctx)
	defer stop()

	var keyMonitor *health.KeyMonitor
	if env.KeyCheckInterval > 0 {
		keyMonitor = health.NewKeyMonitor(health.KeyMonitorOptions{
			Logger:        services.Logger.Named("key-monitor"),
			Client:        services.OmdbClient,
			CheckInterval: env.KeyCheckInterval,
		})
		keyMonitor.Start(ctx)
		defer keyMonitor.Stop()
	}

	httpServer := server.NewServer(server.Options{
		Logger:        services.Logger,
		OmdbClient:    services.OmdbClient,
		HealthHandler: health.NewHandler(keyMonitor, "go-omdb"),
		ListenAddr:    env.ServerAddr,
	})

	wg := &sync.WaitGroup{}
	defer wg.Wait()
	start := func(f interface{ Start() error }) {
		defer wg.Done()
		err := f.Start()
		if err != nil {
			services.Logger.Fatal("failed to start service", zap.Error(err))
		}
	}

	wg.Add(1)
	go start(httpServer)
	defer httpServer.Stop()

	// Wait for signal to start graceful shutdown
	<-ctx.Done()
	services.Logger.Sugar().Infof("Shutting down server")
}
