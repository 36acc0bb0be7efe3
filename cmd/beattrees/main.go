package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hazadus/go-beattrees/internal/config"
	"github.com/hazadus/go-beattrees/internal/dataset"
	"github.com/hazadus/go-beattrees/internal/logger"
	"github.com/hazadus/go-beattrees/internal/s3"
	"github.com/hazadus/go-beattrees/internal/track"
)

const (
	defaultConfigPath = "~/.beattrees/config.yaml"
)

// Application объединяет зависимости, которые получают команды
type Application struct {
	Config  *config.Config
	Logger  *zap.Logger
	Source  dataset.Source
	Manager *track.Manager
}

// newApplication создает приложение по конфигурации
func newApplication(cfg *config.Config, log *zap.Logger) (*Application, error) {
	source, err := dataset.NewSource(cfg.Dataset, sourceOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("ошибка настройки источника датасета: %w", err)
	}

	manager := track.NewManager(source, log, track.WithNotificationDelay(cfg.NotificationDelay))

	return &Application{
		Config:  cfg,
		Logger:  log,
		Source:  source,
		Manager: manager,
	}, nil
}

func sourceOptions(cfg *config.Config) dataset.Options {
	return dataset.Options{
		S3: s3.Config{
			Region:    cfg.AwsRegion,
			AccessKey: cfg.AwsAccessKey,
			SecretKey: cfg.AwsSecretKey,
			Endpoint:  cfg.AwsEndpoint,
		},
		GCSCredentialsFile: cfg.GCSCredentialsFile,
	}
}

// Close освобождает ресурсы приложения
func (app *Application) Close() {
	app.Manager.Close()
	_ = app.Logger.Sync()
}

// isTUI сообщает, запущен ли интерфейс tui: тогда консольный вывод логов отключается
func isTUI(args []string) bool {
	for _, arg := range args {
		if len(arg) > 0 && arg[0] == '-' {
			continue
		}
		return arg == "tui"
	}
	return false
}

func main() {
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	logOpts := logger.Options{Level: cfg.LogLevel, Path: cfg.LogPath}
	if !isTUI(os.Args[1:]) {
		logOpts.Console = os.Stderr
	}
	log := logger.New(logOpts)

	app, err := newApplication(cfg, log)
	if err != nil {
		log.Error("Ошибка запуска приложения", zap.Error(err))
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = app.createRootCommand(ctx).Execute()
	stop()
	app.Close()
	if err != nil {
		os.Exit(1)
	}
}
