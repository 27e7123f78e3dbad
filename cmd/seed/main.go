package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/config"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/db"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/logger"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
)

// Наполняет каталоги стартовыми данными: 8 private (cap 1), 4 conference
// (cap 10), 3 shared (cap 4) и почасовая сетка слотов 09:00–18:00.
// Существующие строки не трогает.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.IsProduction())
	log := logger.L()

	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatal("init db", zap.Error(err))
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatal("auto migrate", zap.Error(err))
	}

	type roomSpec struct {
		prefix   string
		roomType model.RoomType
		count    int
		capacity int
	}
	specs := []roomSpec{
		{"Private Room", model.RoomTypePrivate, 8, 1},
		{"Conference Room", model.RoomTypeConference, 4, 10},
		{"Shared Desk", model.RoomTypeShared, 3, 4},
	}

	roomsCreated := 0
	for _, spec := range specs {
		for i := 1; i <= spec.count; i++ {
			name := fmt.Sprintf("%s %d", spec.prefix, i)
			capacity := spec.capacity
			room := model.Room{Name: name, RoomType: spec.roomType, Capacity: &capacity}

			var existing int64
			gormDB.Model(&model.Room{}).Where("name = ?", name).Count(&existing)
			if existing > 0 {
				continue
			}
			if err := gormDB.Create(&room).Error; err != nil {
				log.Fatal("create room", zap.String("name", name), zap.Error(err))
			}
			roomsCreated++
		}
	}

	slotsCreated := 0
	for hour := 9; hour < 18; hour++ {
		start := fmt.Sprintf("%02d:00", hour)
		end := fmt.Sprintf("%02d:00", hour+1)

		var existing int64
		gormDB.Model(&model.Timeslot{}).
			Where("start_time = ? AND end_time = ?", start, end).
			Count(&existing)
		if existing > 0 {
			continue
		}
		slot := model.Timeslot{StartTime: start, EndTime: end}
		if err := gormDB.Create(&slot).Error; err != nil {
			log.Fatal("create timeslot", zap.String("start", start), zap.Error(err))
		}
		slotsCreated++
	}

	log.Info("seed complete",
		zap.Int("rooms_created", roomsCreated),
		zap.Int("timeslots_created", slotsCreated),
	)
}
