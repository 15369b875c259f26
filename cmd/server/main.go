package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam_scheduler/internal/app"
	"exam_scheduler/internal/config"
	"exam_scheduler/internal/controller"
	"exam_scheduler/internal/repository"
	"exam_scheduler/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync() //nolint:errcheck

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := app.Connect(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close() //nolint:errcheck

	slots := repository.NewSlotRepository(pool)
	enrollments := repository.NewEnrollmentRepository(pool)
	courses := repository.NewCourseRepository(pool)
	users := repository.NewUserRepository(pool)
	selected := repository.NewSelectedStudentRepository(pool)
	sessions := repository.NewSessionRepository(pool)

	services := controller.Services{
		Auth:    service.NewAuthService(users, sessions, cfg.SessionTTL, logger),
		Users:   service.NewUserService(users, courses, slots, logger),
		Booking: service.NewBookingService(slots, logger),
		Exams:   service.NewExamService(courses, slots, selected, logger),
		Results: service.NewResultsService(slots, enrollments, selected, logger),
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: controller.NewRouter(services, logger),
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
