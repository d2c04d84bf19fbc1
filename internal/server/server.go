package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bistro/app/jobs"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/routes"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"github.com/shashiranjanraj/bistro/pkg/event"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/queue"
	"github.com/shashiranjanraj/bistro/pkg/router"
	"github.com/shashiranjanraj/bistro/pkg/schedule"
	"github.com/shashiranjanraj/bistro/pkg/storage"
	"github.com/shashiranjanraj/bistro/pkg/ws"
)

const shutdownGrace = 10 * time.Second

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := database.Connect(bootCtx); err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		_ = database.Disconnect(dctx)
	}()

	cache.Connect()
	storage.Connect()

	if config.LogToMongo() {
		mh := logger.NewMongoHandler(database.Collection("logs"))
		logger.Attach(mh)
		defer mh.Close()
	}

	bootQueue(ctx)
	bootSchedule(ctx)

	hub := ws.NewHub()
	go hub.Run()
	event.Listen(services.EventPaymentRecorded, func(payload interface{}) {
		hub.BroadcastJSON(map[string]interface{}{"event": "payment.recorded", "payment": payload})
		if p, ok := payload.(*models.Payment); ok {
			if err := queue.Dispatch(&jobs.PaymentReceiptJob{
				Email:         p.Email,
				Amount:        p.Amount,
				TransactionID: p.TransactionID,
			}); err != nil {
				logger.L.Warn("receipt dispatch failed", "email", p.Email, "error", err)
			}
		}
	})

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{OrderFeed: hub})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("bistro listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L.Info("shutting down")
	shutdownCtx, scancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer scancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func bootQueue(ctx context.Context) {
	jobs.RegisterAll()
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseCollection(database.Collection("failed_jobs"))
	queue.StartWorkers(ctx, 4)
}

func bootSchedule(ctx context.Context) {
	carts := repositories.NewCartRepository(database.Collection("carts"))
	ttl := time.Duration(config.CartTTLDays()) * 24 * time.Hour

	// Abandoned carts are purged hourly once past their TTL.
	schedule.Every(time.Hour).NoOverlap().Run(func() {
		cctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		cutoff := time.Now().Add(-ttl)
		purged, err := carts.DeleteOlderThan(cctx, cutoff)
		if err != nil {
			logger.L.Error("cart purge failed", "error", err)
			return
		}
		if purged > 0 {
			logger.L.Info("purged stale cart items", "count", purged)
		}
	})
	schedule.Start(ctx)
}
