package service

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps :memory: stable across transactions.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newBookingService(t *testing.T, db *gorm.DB) *BookingService {
	t.Helper()
	return NewBookingService(
		db,
		repository.NewGormBookingRepository(db),
		repository.NewGormRoomRepository(db),
		repository.NewGormTimeslotRepository(db),
		repository.NewGormTeamRepository(db),
		zap.NewNop(),
	)
}

func newAvailabilityService(db *gorm.DB) *AvailabilityService {
	return NewAvailabilityService(
		repository.NewGormBookingRepository(db),
		repository.NewGormRoomRepository(db),
		repository.NewGormTimeslotRepository(db),
	)
}

func seedUser(t *testing.T, db *gorm.DB, name string, age int, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Age:          age,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedRoom(t *testing.T, db *gorm.DB, name string, roomType model.RoomType, capacity int) *model.Room {
	t.Helper()
	r := &model.Room{Name: name, RoomType: roomType}
	if capacity > 0 {
		r.Capacity = &capacity
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed room %s: %v", name, err)
	}
	return r
}

func seedTimeslot(t *testing.T, db *gorm.DB, start, end string) *model.Timeslot {
	t.Helper()
	s := &model.Timeslot{StartTime: start, EndTime: end}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed timeslot %s-%s: %v", start, end, err)
	}
	return s
}

// seedTeam creates a team led by lead with the given extra members. The lead
// is always a member, mirroring what TeamService.Create does.
func seedTeam(t *testing.T, db *gorm.DB, name string, lead *model.User, members ...*model.User) *model.Team {
	t.Helper()
	team := &model.Team{Name: name, CreatedByID: lead.ID}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("seed team %s: %v", name, err)
	}
	for _, u := range append([]*model.User{lead}, members...) {
		if err := db.Create(&model.TeamMember{TeamID: team.ID, UserID: u.ID}).Error; err != nil {
			t.Fatalf("seed team member: %v", err)
		}
	}
	return team
}

func asContext(u *model.User) booking.RequestContext {
	return booking.RequestContext{UserID: u.ID, Role: u.Role}
}

func roomTarget(id uuid.UUID) *uuid.UUID { return &id }

func sharedPool() *model.RoomType {
	rt := model.RoomTypeShared
	return &rt
}

// wantKind asserts err is an engine error of the given kind and reason.
func wantKind(t *testing.T, err error, kind booking.ErrorKind, reason string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want %q", reason)
	}
	got, ok := booking.KindOf(err)
	if !ok {
		t.Fatalf("error = %v, want engine error %q", err, reason)
	}
	if got != kind {
		t.Fatalf("error kind = %d, want %d (%v)", got, kind, err)
	}
	if err.Error() != reason {
		t.Fatalf("error reason = %q, want %q", err.Error(), reason)
	}
}
