package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
)

const testDate = "2026-09-01"

func TestBookingService_PrivateBookConflictCancelRebook(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	bob := seedUser(t, db, "bob", 30, model.UserRoleUser)
	room := seedRoom(t, db, "Private Room 1", model.RoomTypePrivate, 1)
	slot := seedTimeslot(t, db, "09:00", "10:00")

	req := CreateBookingRequest{RoomID: roomTarget(room.ID), Date: testDate, TimeslotID: &slot.ID}

	id, err := svc.Create(ctx, asContext(alice), req)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Same room, same slot: rejected regardless of who asks.
	_, err = svc.Create(ctx, asContext(bob), req)
	wantKind(t, err, booking.KindConflict, "No available room for the selected slot and type.")

	// An overlapping ad-hoc extent conflicts too.
	_, err = svc.Create(ctx, asContext(bob), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:30", EndTime: "10:30",
	})
	wantKind(t, err, booking.KindConflict, "No available room for the selected slot and type.")

	// A back-to-back extent does not.
	if _, err := svc.Create(ctx, asContext(bob), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("back-to-back booking: %v", err)
	}

	// Cancellation frees the slot for rebooking.
	if err := svc.Cancel(ctx, asContext(alice), id); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Create(ctx, asContext(bob), req); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestBookingService_SameExtentDifferentDateDoesNotConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	room := seedRoom(t, db, "Private Room 1", model.RoomTypePrivate, 1)
	slot := seedTimeslot(t, db, "09:00", "10:00")

	if _, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: "2026-09-01", TimeslotID: &slot.ID,
	}); err != nil {
		t.Fatalf("day one: %v", err)
	}
	if _, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: "2026-09-02", TimeslotID: &slot.ID,
	}); err != nil {
		t.Fatalf("day two: %v", err)
	}
}

func TestBookingService_RequestValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	room := seedRoom(t, db, "Private Room 1", model.RoomTypePrivate, 1)
	team := seedTeam(t, db, "owls", alice)

	_, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{RoomID: roomTarget(room.ID), StartTime: "09:00", EndTime: "10:00"})
	wantKind(t, err, booking.KindValidation, "date is required")

	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{RoomID: roomTarget(room.ID), Date: "01-09-2026", StartTime: "09:00", EndTime: "10:00"})
	wantKind(t, err, booking.KindValidation, "invalid date, expected YYYY-MM-DD")

	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{RoomID: roomTarget(room.ID), Date: testDate})
	wantKind(t, err, booking.KindValidation, "time_slot or start_time/end_time is required")

	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{RoomID: roomTarget(room.ID), Date: testDate, StartTime: "11:00", EndTime: "10:00"})
	wantKind(t, err, booking.KindValidation, "start_time must be before end_time")

	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{Date: testDate, StartTime: "09:00", EndTime: "10:00"})
	wantKind(t, err, booking.KindValidation, "room is required")

	unknown := roomTarget(team.ID)
	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{RoomID: unknown, Date: testDate, StartTime: "09:00", EndTime: "10:00"})
	wantKind(t, err, booking.KindNotFound, "Room not found.")

	// Teams have no business outside conference rooms.
	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00", TeamID: &team.ID,
	})
	wantKind(t, err, booking.KindValidation, "Team is only valid for conference rooms.")

	shared := seedRoom(t, db, "Shared Desk 1", model.RoomTypeShared, 4)
	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(shared.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00", TeamID: &team.ID,
	})
	wantKind(t, err, booking.KindValidation, "Team is only valid for conference rooms.")
}

// Requester/room-type compatibility is decided before any type-specific
// checks: a user targeting a conference room is turned away even when the
// room is already occupied.
func TestBookingService_RequesterCompatibilityPrecedesConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	lead := seedUser(t, db, "lead", 30, model.UserRoleUser)
	member := seedUser(t, db, "member", 30, model.UserRoleUser)
	third := seedUser(t, db, "third", 30, model.UserRoleUser)
	solo := seedUser(t, db, "solo", 30, model.UserRoleUser)
	team := seedTeam(t, db, "owls", lead, member, third)
	room := seedRoom(t, db, "Conference Room 1", model.RoomTypeConference, 10)

	if _, err := svc.Create(ctx, asContext(lead), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00", TeamID: &team.ID,
	}); err != nil {
		t.Fatalf("team booking: %v", err)
	}

	_, err := svc.Create(ctx, asContext(solo), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00",
	})
	wantKind(t, err, booking.KindValidation, "Team required for conference room.")
}

func TestBookingService_SharedPoolFillsAllDesks(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	desk1 := seedRoom(t, db, "Shared Desk 1", model.RoomTypeShared, 4)
	desk2 := seedRoom(t, db, "Shared Desk 2", model.RoomTypeShared, 4)
	desk3 := seedRoom(t, db, "Shared Desk 3", model.RoomTypeShared, 4)
	slot := seedTimeslot(t, db, "09:00", "10:00")

	users := make([]*model.User, 0, 13)
	for i := 0; i < 13; i++ {
		users = append(users, seedUser(t, db, fmt.Sprintf("user%02d", i), 25, model.UserRoleUser))
	}

	// 12 distinct users fill 3 rooms of capacity 4.
	for i := 0; i < 12; i++ {
		if _, err := svc.Create(ctx, asContext(users[i]), CreateBookingRequest{
			RoomType: sharedPool(), Date: testDate, TimeslotID: &slot.ID,
		}); err != nil {
			t.Fatalf("shared booking %d: %v", i, err)
		}
	}

	for _, desk := range []*model.Room{desk1, desk2, desk3} {
		var n int64
		if err := db.Model(&model.Booking{}).
			Where("room_id = ? AND is_active = ?", desk.ID, true).
			Count(&n).Error; err != nil {
			t.Fatalf("count desk bookings: %v", err)
		}
		if n != 4 {
			t.Fatalf("desk %s holds %d bookings, want 4", desk.Name, n)
		}
	}

	// The 13th finds no free desk anywhere.
	_, err := svc.Create(ctx, asContext(users[12]), CreateBookingRequest{
		RoomType: sharedPool(), Date: testDate, TimeslotID: &slot.ID,
	})
	wantKind(t, err, booking.KindConflict, "No available shared desk for the selected slot.")
}

func TestBookingService_SharedOneSeatPerUserAcrossRooms(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	seedRoom(t, db, "Shared Desk 1", model.RoomTypeShared, 4)
	desk2 := seedRoom(t, db, "Shared Desk 2", model.RoomTypeShared, 4)
	slot := seedTimeslot(t, db, "09:00", "10:00")

	if _, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomType: sharedPool(), Date: testDate, TimeslotID: &slot.ID,
	}); err != nil {
		t.Fatalf("first shared booking: %v", err)
	}

	// Even naming a different room explicitly, an overlapping shared seat
	// for the same user is rejected system-wide.
	_, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(desk2.ID), Date: testDate, StartTime: "09:30", EndTime: "10:30",
	})
	wantKind(t, err, booking.KindConflict, "You already have a shared desk booking for this slot.")

	// A disjoint extent the same day is fine.
	if _, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(desk2.ID), Date: testDate, StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("disjoint shared booking: %v", err)
	}
}

func TestBookingService_SharedSeatNumbersAreReused(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	desk := seedRoom(t, db, "Shared Desk 1", model.RoomTypeShared, 4)
	slot := seedTimeslot(t, db, "09:00", "10:00")

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	bob := seedUser(t, db, "bob", 30, model.UserRoleUser)
	carol := seedUser(t, db, "carol", 30, model.UserRoleUser)

	req := CreateBookingRequest{RoomID: roomTarget(desk.ID), Date: testDate, TimeslotID: &slot.ID}

	aliceID, err := svc.Create(ctx, asContext(alice), req)
	if err != nil {
		t.Fatalf("alice: %v", err)
	}
	if _, err := svc.Create(ctx, asContext(bob), req); err != nil {
		t.Fatalf("bob: %v", err)
	}

	// Freeing seat 1 makes it the first free seat again.
	if err := svc.Cancel(ctx, asContext(alice), aliceID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	carolID, err := svc.Create(ctx, asContext(carol), req)
	if err != nil {
		t.Fatalf("carol: %v", err)
	}

	var b model.Booking
	if err := db.First(&b, "id = ?", carolID).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if b.SeatNo != 1 {
		t.Fatalf("seat_no = %d, want 1", b.SeatNo)
	}
}

func TestBookingService_ConferenceValidationOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	lead := seedUser(t, db, "lead", 30, model.UserRoleUser)
	member := seedUser(t, db, "member", 30, model.UserRoleUser)
	child := seedUser(t, db, "child", 8, model.UserRoleUser)
	room := seedRoom(t, db, "Conference Room 1", model.RoomTypeConference, 10)
	slot := seedTimeslot(t, db, "09:00", "10:00")

	base := CreateBookingRequest{RoomID: roomTarget(room.ID), Date: testDate, TimeslotID: &slot.ID}

	// Team is checked first.
	_, err := svc.Create(ctx, asContext(lead), base)
	wantKind(t, err, booking.KindValidation, "Team required for conference room.")

	// Two adults plus an under-age member count as two seats.
	small := seedTeam(t, db, "small", lead, member, child)
	req := base
	req.TeamID = &small.ID
	_, err = svc.Create(ctx, asContext(lead), req)
	wantKind(t, err, booking.KindValidation, "Team must have at least 3 members (age >= 10).")

	// Seat count passes before the lead check fires.
	third := seedUser(t, db, "third", 30, model.UserRoleUser)
	big := seedTeam(t, db, "big", lead, member, third)
	req = base
	req.TeamID = &big.ID
	_, err = svc.Create(ctx, asContext(member), req)
	wantKind(t, err, booking.KindForbidden, "Only team lead can book conference rooms.")

	// Lead with a valid team succeeds.
	id, err := svc.Create(ctx, asContext(lead), req)
	if err != nil {
		t.Fatalf("conference booking: %v", err)
	}

	var b model.Booking
	if err := db.First(&b, "id = ?", id).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if b.TeamID == nil || *b.TeamID != big.ID {
		t.Fatalf("team_id = %v, want %s", b.TeamID, big.ID)
	}
	if b.UserID == nil || *b.UserID != lead.ID {
		t.Fatalf("user_id = %v, want %s", b.UserID, lead.ID)
	}

	// The room is now taken for that slot, even for another valid team.
	otherLead := seedUser(t, db, "otherlead", 30, model.UserRoleUser)
	other := seedTeam(t, db, "other", otherLead, member, third)
	req.TeamID = &other.ID
	_, err = svc.Create(ctx, asContext(otherLead), req)
	wantKind(t, err, booking.KindConflict, "No available room for the selected slot and type.")
}

func TestBookingService_ConferenceUnknownTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	lead := seedUser(t, db, "lead", 30, model.UserRoleUser)
	room := seedRoom(t, db, "Conference Room 1", model.RoomTypeConference, 10)

	ghost := lead.ID
	_, err := svc.Create(ctx, asContext(lead), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00", TeamID: &ghost,
	})
	wantKind(t, err, booking.KindNotFound, "Team not found.")
}

func TestBookingService_CancelAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	bob := seedUser(t, db, "bob", 30, model.UserRoleUser)
	room := seedRoom(t, db, "Private Room 1", model.RoomTypePrivate, 1)

	id, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Cancel(ctx, asContext(bob), id)
	wantKind(t, err, booking.KindForbidden, "Only the booking user can cancel this booking.")

	if err := svc.Cancel(ctx, asContext(alice), id); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}

	// Double cancel and unknown id collapse to the same answer.
	err = svc.Cancel(ctx, asContext(alice), id)
	wantKind(t, err, booking.KindNotFound, "Booking not found or already cancelled.")
	err = svc.Cancel(ctx, asContext(alice), bob.ID)
	wantKind(t, err, booking.KindNotFound, "Booking not found or already cancelled.")
}

func TestBookingService_CancelTeamBookingRequiresLead(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	lead := seedUser(t, db, "lead", 30, model.UserRoleUser)
	member := seedUser(t, db, "member", 30, model.UserRoleUser)
	third := seedUser(t, db, "third", 30, model.UserRoleUser)
	team := seedTeam(t, db, "owls", lead, member, third)
	room := seedRoom(t, db, "Conference Room 1", model.RoomTypeConference, 10)

	id, err := svc.Create(ctx, asContext(lead), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00", TeamID: &team.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Cancel(ctx, asContext(member), id)
	wantKind(t, err, booking.KindForbidden, "Only team lead can cancel this booking.")

	if err := svc.Cancel(ctx, asContext(lead), id); err != nil {
		t.Fatalf("lead cancel: %v", err)
	}
}

func TestBookingService_ListVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", 40, model.UserRoleAdmin)
	lead := seedUser(t, db, "lead", 30, model.UserRoleUser)
	member := seedUser(t, db, "member", 30, model.UserRoleUser)
	third := seedUser(t, db, "third", 30, model.UserRoleUser)
	outsider := seedUser(t, db, "outsider", 30, model.UserRoleUser)

	team := seedTeam(t, db, "owls", lead, member, third)
	conf := seedRoom(t, db, "Conference Room 1", model.RoomTypeConference, 10)
	priv := seedRoom(t, db, "Private Room 1", model.RoomTypePrivate, 1)

	if _, err := svc.Create(ctx, asContext(lead), CreateBookingRequest{
		RoomID: roomTarget(conf.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00", TeamID: &team.ID,
	}); err != nil {
		t.Fatalf("team booking: %v", err)
	}
	if _, err := svc.Create(ctx, asContext(outsider), CreateBookingRequest{
		RoomID: roomTarget(priv.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00",
	}); err != nil {
		t.Fatalf("private booking: %v", err)
	}

	all, err := svc.List(ctx, asContext(admin))
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d bookings, want 2", len(all))
	}

	// A member sees the team booking although they did not place it.
	mine, err := svc.List(ctx, asContext(member))
	if err != nil {
		t.Fatalf("member list: %v", err)
	}
	if len(mine) != 1 || mine[0].TeamID == nil || *mine[0].TeamID != team.ID {
		t.Fatalf("member list = %+v, want the team booking only", mine)
	}

	theirs, err := svc.List(ctx, asContext(outsider))
	if err != nil {
		t.Fatalf("outsider list: %v", err)
	}
	if len(theirs) != 1 || theirs[0].RoomID != priv.ID {
		t.Fatalf("outsider list = %+v, want the private booking only", theirs)
	}
}

// The partial unique index is the storage-level backstop: two identical
// active extents cannot coexist, while a cancelled row frees the key.
func TestBookingLedger_ActiveExtentUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	bob := seedUser(t, db, "bob", 30, model.UserRoleUser)
	room := seedRoom(t, db, "Private Room 1", model.RoomTypePrivate, 1)

	id, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var won model.Booking
	if err := db.First(&won, "id = ?", id).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}

	// A raced insert that slipped past the read check loses on write.
	lost := model.Booking{
		RoomID:    room.ID,
		Date:      won.Date,
		StartTime: won.StartTime,
		EndTime:   won.EndTime,
		SeatNo:    won.SeatNo,
		UserID:    &bob.ID,
		IsActive:  true,
	}
	if err := db.Create(&lost).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error = %v, want ErrDuplicatedKey", err)
	}

	// Deactivating the winner takes it out of the index.
	if err := db.Model(&model.Booking{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	lost.ID = uuid.Nil
	if err := db.Create(&lost).Error; err != nil {
		t.Fatalf("insert after deactivate: %v", err)
	}
}

// raceLosingBookingRepo passes every read check and loses on write, the way
// a raced transaction does against the partial unique index.
type raceLosingBookingRepo struct {
	repository.BookingRepository
}

func (r raceLosingBookingRepo) WithTx(tx *gorm.DB) repository.BookingRepository {
	return r
}

func (r raceLosingBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return gorm.ErrDuplicatedKey
}

func TestBookingService_RaceLoserReasonMatchesRoomType(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", 30, model.UserRoleUser)
	priv := seedRoom(t, db, "Private Room 1", model.RoomTypePrivate, 1)
	seedRoom(t, db, "Shared Desk 1", model.RoomTypeShared, 4)

	svc := NewBookingService(
		db,
		raceLosingBookingRepo{repository.NewGormBookingRepository(db)},
		repository.NewGormRoomRepository(db),
		repository.NewGormTimeslotRepository(db),
		repository.NewGormTeamRepository(db),
		zap.NewNop(),
	)

	_, err := svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomID: roomTarget(priv.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00",
	})
	wantKind(t, err, booking.KindConflict, "No available room for the selected slot and type.")

	_, err = svc.Create(ctx, asContext(alice), CreateBookingRequest{
		RoomType: sharedPool(), Date: testDate, StartTime: "09:00", EndTime: "10:00",
	})
	wantKind(t, err, booking.KindConflict, "No available shared desk for the selected slot.")
}

// Catalog and team deletions must not take ledger rows with them.
func TestBookingLedger_SurvivesTeamDeletion(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(t, db)
	teams := newTeamService(db)
	ctx := context.Background()

	lead := seedUser(t, db, "lead", 30, model.UserRoleUser)
	member := seedUser(t, db, "member", 30, model.UserRoleUser)
	third := seedUser(t, db, "third", 30, model.UserRoleUser)
	team := seedTeam(t, db, "owls", lead, member, third)
	room := seedRoom(t, db, "Conference Room 1", model.RoomTypeConference, 10)

	id, err := svc.Create(ctx, asContext(lead), CreateBookingRequest{
		RoomID: roomTarget(room.ID), Date: testDate, StartTime: "09:00", EndTime: "10:00", TeamID: &team.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := teams.Delete(ctx, asContext(lead), team.ID); err != nil {
		t.Fatalf("delete team: %v", err)
	}

	var b model.Booking
	if err := db.First(&b, "id = ?", id).Error; err != nil {
		t.Fatalf("ledger row gone after team deletion: %v", err)
	}
	if !b.IsActive {
		t.Fatalf("ledger row deactivated by team deletion")
	}
}
