package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/xyproto/env/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ilaym3/hashmap/internal/server"
)

func main() {
	addr := flag.String("addr", env.Str("HASHMAP_ADDR", server.DefaultAddr), "listen address")
	size := flag.Int("initial-size", env.Int("HASHMAP_INITIAL_SIZE", server.DefaultTableSize), "initial bucket count")
	multicore := flag.Bool("multicore", env.Bool("HASHMAP_MULTICORE"), "run one event loop per core")
	logFile := flag.String("logfile", env.Str("HASHMAP_LOG_FILE"), "rotating log file (empty = stderr)")
	flag.Parse()

	logger, err := buildLogger(*logFile)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(server.Config{
		Addr:      *addr,
		TableSize: *size,
		Multicore: *multicore,
	}, logger)
	if err != nil {
		logger.Fatal("server init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func buildLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewProduction()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}),
		zap.InfoLevel,
	)
	return zap.New(core), nil
}
