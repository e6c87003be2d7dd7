package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/filestore"
	httpadapter "github.com/Theternos/TaskFlow-sub001/internal/adapter/http"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/handlers"
	httpmiddleware "github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/notify"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/store/jsonfile"
	"github.com/Theternos/TaskFlow-sub001/internal/app/service"
	"github.com/Theternos/TaskFlow-sub001/internal/config"
	"github.com/Theternos/TaskFlow-sub001/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()

	store, err := jsonfile.New(cfg.DataFile)
	if err != nil {
		logger.Fatal("failed to open data file", zap.Error(err))
	}
	files, err := filestore.NewLocal(cfg.UploadDir)
	if err != nil {
		logger.Fatal("failed to open upload dir", zap.Error(err))
	}

	clock := service.SystemClock{}
	notifier := notify.NewLogNotifier(logger)
	calendar := notify.NewLogCalendarSync(logger)
	taskService := service.NewTaskService(store, files, notifier, calendar, clock, cfg.NotifyTimeout)
	prioritizer := service.NewPrioritizer(clock)

	// The sweep runs on its own schedule and serializes through the
	// same writer lock as request-triggered mutations.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReminderCron, func() {
		sent, err := taskService.CheckAndSendReminders(context.Background())
		if err != nil {
			logger.Error("reminder sweep failed", zap.Error(err))
			return
		}
		if sent > 0 {
			logger.Info("reminder sweep done", zap.Int("sent", sent))
		}
	}); err != nil {
		logger.Fatal("invalid reminder schedule", zap.String("cron", cfg.ReminderCron), zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if cfg.TrustedProxies != nil {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	secret := []byte(cfg.JWTSecret)
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:  handlers.NewHealthHandler(store),
		Auth:    handlers.NewAuthHandler(taskService, secret, clock),
		Task:    handlers.NewTaskHandler(taskService, prioritizer),
		Request: handlers.NewRequestHandler(taskService),
		Tag:     handlers.NewTagHandler(taskService),
	}, secret)

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
