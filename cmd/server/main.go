package main

import (
	"async4x-server/internal/config"
	"async4x-server/internal/infrastructure/storage"
	"async4x-server/internal/network"
	"async4x-server/internal/server"
	"async4x-server/internal/version"
	"async4x-server/pkg/logger"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. Флаги командной строки перекрывают файл и окружение
	var (
		configDir string
		port      string
		seed      int64
	)
	flag.StringVar(&configDir, "config", ".", "Directory with async4x.cfg.json")
	flag.StringVar(&port, "port", "", "HTTP port (overrides server.port)")
	flag.Int64Var(&seed, "seed", 0, "Create a game with this seed on startup (0 - none)")
	flag.Parse()

	if err := config.Load(configDir); err != nil {
		logger.Log.Fatal("Failed to load config: ", err)
	}
	logger.Init(config.GetString("logLevel"), config.GetString("logFormat"))

	logger.Log.Info("Starting Async 4X server...")
	logger.Log.Info(version.String())

	if port == "" {
		port = config.GetString("server.port")
	}

	// 2. Хранилище
	store, err := storage.Open(config.Storage())
	if err != nil {
		logger.Log.Fatal("Failed to open storage: ", err)
	}
	defer store.Close()

	// 3. Сервис партий
	service := server.NewService(store, network.NewBroadcaster(), server.Options{
		Engine:  config.Engine(),
		LogKeep: config.GetInt("engine.logKeep"),
		Debug:   config.GetBool("debug"),
		Radius:  config.GetInt("scenario.radius"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if seed == 0 {
		seed = config.GetInt64("scenario.seed")
	}
	if seed != 0 {
		g, err := service.CreateGame(ctx, seed, 0)
		if err != nil {
			logger.Log.Fatal("Failed to create initial game: ", err)
		}
		logger.Log.Infof("🎲 Initial game %s created with seed %d", g.ID, seed)
	}

	// 4. Запуск сервера до сигнала
	srv := server.New(service, port, config.GetFloat("server.rateLimit"), config.GetInt("server.rateBurst"))
	if err := srv.Run(ctx); err != nil {
		logger.Log.Error("Server stopped with error: ", err)
	}

	logger.Log.Info("Done.")
}
