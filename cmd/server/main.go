package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ocrdesk/internal/config"
	"ocrdesk/internal/handler"
	"ocrdesk/internal/layout"
	"ocrdesk/internal/recognizer/tesseract"
	"ocrdesk/internal/repository/postgres"
	"ocrdesk/internal/router"
	"ocrdesk/internal/service"
	s3storage "ocrdesk/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("server: ignoring .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	recordRepo := postgres.NewOcrRecordRepo(db)

	// Storage and recognition
	images, err := s3storage.NewImageStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 image store: %w", err)
	}
	engine := tesseract.NewEngine(&cfg.OCR)
	formatter := layout.NewFormatter(layoutOptions(cfg.Layout))

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	recordSvc := service.NewRecordService(recordRepo)
	ocrSvc := service.NewOCRService(recordSvc, images, engine, formatter, &cfg.Upload, cfg.OCR.Language)

	// Background workers
	monitor := service.NewStaleMonitor(recordRepo, service.StaleMonitorConfig{
		Interval:   cfg.Reconcile.Interval,
		StaleAfter: cfg.Reconcile.StaleAfter,
	})
	go monitor.Start(ctx)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	ocrH := handler.NewOCRHandler(ocrSvc)
	healthH := handler.NewHealthHandler(db, images)

	r := router.Setup(authSvc, authH, ocrH, healthH, cfg.CORS.AllowedOrigins, cfg.Upload.MaxFileSizeMB<<20, cfg.RateLimit)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (engine %s, layout %+v)", cfg.Server.Port, engine.Name(), formatter.Options())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func layoutOptions(cfg config.LayoutConfig) layout.Options {
	return layout.Options{
		BandHeight:    cfg.BandHeight,
		PixelsPerChar: cfg.PixelsPerChar,
		CharAdvancePx: cfg.CharAdvancePx,
		ColumnWidths:  cfg.ColumnWidths,
		TabWidth:      cfg.TabWidth,
	}
}

func configureLogging(cfg *config.Config) {
	flags := log.LstdFlags | log.LUTC
	if cfg.Log.Level == "debug" {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
