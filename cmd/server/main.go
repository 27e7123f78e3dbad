package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/config"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/db"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/logger"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/service"
	transport "github.com/TejaVenkatBalla/Workspace-Management/internal/transport/http"
)

func main() {
	// 1. Загружаем конфиг из env/config.yaml.
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// 2. Логгер.
	logger.Init(cfg.IsProduction())
	log := logger.L()
	defer log.Sync() //nolint:errcheck

	// 3. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatal("init db", zap.Error(err))
	}

	// 4. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatal("auto migrate", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 5. Репозитории (реализации на GORM).
	userRepo := repository.NewGormUserRepository(gormDB)
	teamRepo := repository.NewGormTeamRepository(gormDB)
	roomRepo := repository.NewGormRoomRepository(gormDB)
	slotRepo := repository.NewGormTimeslotRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)

	// 6. Сервисы.
	identitySvc := service.NewIdentityService(userRepo, cfg.JWTSecret, log)
	bookingSvc := service.NewBookingService(gormDB, bookingRepo, roomRepo, slotRepo, teamRepo, log)
	availabilitySvc := service.NewAvailabilityService(bookingRepo, roomRepo, slotRepo)
	teamSvc := service.NewTeamService(teamRepo, userRepo)
	catalogSvc := service.NewCatalogService(roomRepo, slotRepo)

	// 7. HTTP-сервер.
	router := transport.NewRouter(identitySvc, bookingSvc, availabilitySvc, teamSvc, catalogSvc)
	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http serve", zap.Error(err))
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
