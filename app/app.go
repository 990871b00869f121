package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/config"
	"github.com/hsalamardi/lending-service/internal/handler"
	"github.com/hsalamardi/lending-service/internal/repository"
	"github.com/hsalamardi/lending-service/internal/server"
	"github.com/hsalamardi/lending-service/internal/service"
	"github.com/hsalamardi/lending-service/migrations"
	"github.com/hsalamardi/lending-service/pkg/kafka"
	"github.com/hsalamardi/lending-service/pkg/logger"
	"github.com/hsalamardi/lending-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "lending")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	// notification dispatch is best-effort: a missing broker degrades to
	// dropped events, never to a dead service
	var pub service.Enqueuer = service.NopEnqueuer{}
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, events will be dropped", zap.Error(err))
	} else {
		pub = service.NewEnqueuer(producer)
	}

	svc := service.NewService(repo, pub, cfg.Lending, log)
	h := handler.New(svc, svc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	go sweepReservations(sweepCtx, svc, cfg.SweepInterval, log)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	sweepCancel()

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

// sweepReservations expires stale reservations on a fixed interval until
// the context is cancelled.
func sweepReservations(ctx context.Context, svc *service.Service, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := svc.ExpireStaleReservations(ctx, time.Now().UTC()); err != nil {
				log.Error("expire stale reservations", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
