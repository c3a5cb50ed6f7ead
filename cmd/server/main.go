package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/config"
	"github.com/mamadbah2/homy/internal/repository/mongodb"
	"github.com/mamadbah2/homy/internal/repository/sheets"
	"github.com/mamadbah2/homy/internal/scheduler"
	"github.com/mamadbah2/homy/internal/server/handlers"
	"github.com/mamadbah2/homy/internal/server/router"
	"github.com/mamadbah2/homy/internal/service/inventory"
	"github.com/mamadbah2/homy/internal/service/receipt"
	reportingsvc "github.com/mamadbah2/homy/internal/service/reporting"
	"github.com/mamadbah2/homy/internal/service/shopping"
	"github.com/mamadbah2/homy/internal/service/suggestions"
	"github.com/mamadbah2/homy/internal/service/takeout"
	whatsappsvc "github.com/mamadbah2/homy/internal/service/whatsapp"
	"github.com/mamadbah2/homy/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/homy/pkg/clients/whatsapp"
	"github.com/mamadbah2/homy/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.Environment))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	inventoryStore := inventory.NewStore(clock, baseLogger.Named("svc.inventory"))
	takeoutLog := takeout.NewLog(clock, baseLogger.Named("svc.takeout"))
	shoppingList := shopping.NewList(baseLogger.Named("svc.shopping"))
	reportingSvc := reportingsvc.NewService(inventoryStore, takeoutLog, shoppingList, cfg.Inventory.ExpiringWithinDays, baseLogger.Named("svc.reporting"))

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		takeoutLog.SetMirror(sheetsRepo)
		baseLogger.Info("takeout mirror enabled")
	}

	var (
		reportArchive  handlers.ReportArchive
		digestArchive  scheduler.Archive
		digestNotifier scheduler.Notifier
	)

	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		reportArchive = mongoRepo
		digestArchive = mongoRepo
		baseLogger.Info("report archive enabled")
	}

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		digestNotifier = whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, baseLogger.Named("svc.whatsapp"))
		baseLogger.Info("whatsapp digest delivery enabled")
	}

	var extractor receipt.ItemExtractor
	if cfg.AI.AnthropicKey != "" {
		extractor = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic receipt extraction enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, receipt photos return the sample list")
	}
	receiptSvc := receipt.NewService(extractor, baseLogger.Named("svc.receipt"))

	maxUploadBytes := cfg.Server.MaxUploadMB << 20
	engine := router.New(router.Handlers{
		Inventory:   handlers.NewInventoryHandler(inventoryStore, clock, cfg.Inventory.ExpiringWithinDays, baseLogger.Named("handlers.inventory")),
		Takeout:     handlers.NewTakeoutHandler(takeoutLog, baseLogger.Named("handlers.takeout")),
		Shopping:    handlers.NewShoppingHandler(shoppingList, baseLogger.Named("handlers.shopping")),
		Suggestions: handlers.NewSuggestionHandler(suggestions.NewEngine(), baseLogger.Named("handlers.suggestions")),
		Receipts:    handlers.NewReceiptHandler(receiptSvc, maxUploadBytes, baseLogger.Named("handlers.receipt")),
		Reports:     handlers.NewReportHandler(reportingSvc, reportArchive, clock, baseLogger.Named("handlers.reports")),
	}, baseLogger.Named("router"))
	engine.MaxMultipartMemory = maxUploadBytes

	if cfg.Reporting.Enabled {
		sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, digestArchive, digestNotifier, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	takeoutLog.Wait()
}
