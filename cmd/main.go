package main

import (
	"context"

	"ucode/ucode_go_report_builder_service/api"
	"ucode/ucode_go_report_builder_service/config"
	"ucode/ucode_go_report_builder_service/pkg/jaeger"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	"ucode/ucode_go_report_builder_service/storage/postgres"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelDebug

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer logger.Cleanup(log)
	log.Info("Service env", logger.Any("cfg", cfg))

	if cfg.JaegerHostPort != "" {
		closer, err := jaeger.InitTracer(cfg.ServiceName, cfg.JaegerHostPort)
		if err != nil {
			log.Panic("jaeger.InitTracer", logger.Error(err))
		}
		defer closer.Close()
	}

	pgStore, err := postgres.NewPostgres(context.Background(), cfg, log)
	if err != nil {
		log.Panic("postgres.NewPostgres", logger.Error(err))
	}
	defer pgStore.CloseDB()

	router := api.SetUpRouter(cfg, log, pgStore)

	log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))

	if err := router.Run(cfg.HTTPPort); err != nil {
		log.Panic("router.Run", logger.Error(err))
	}
}
