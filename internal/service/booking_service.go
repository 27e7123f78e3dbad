package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
)

const (
	// Минимальный возраст участника, учитываемого при подсчёте мест.
	MinEligibleAge = 10
	// Минимум подходящих участников для брони конференц-зала.
	MinConferenceSeats = 3
)

// Запрос на создание брони. Цель — либо конкретная комната (RoomID), либо
// тип комнаты для pooled-выбора (сейчас это shared). Экстент — либо слот
// каталога, либо явная пара start/end.
type CreateBookingRequest struct {
	RoomID     *uuid.UUID
	RoomType   *model.RoomType
	Date       string // YYYY-MM-DD
	TimeslotID *uuid.UUID
	StartTime  string // HH:MM, вместе с EndTime
	EndTime    string
	TeamID     *uuid.UUID
}

// BookingService — движок аллокации и отмены. Вся последовательность
// «проверить и записать» выполняется одной транзакцией; частичное состояние
// наружу не наблюдаемо.
type BookingService struct {
	db       *gorm.DB
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	slots    repository.TimeslotRepository
	teams    repository.TeamRepository
	log      *zap.Logger
}

func NewBookingService(
	db *gorm.DB,
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	slots repository.TimeslotRepository,
	teams repository.TeamRepository,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		db:       db,
		bookings: bookings,
		rooms:    rooms,
		slots:    slots,
		teams:    teams,
		log:      log,
	}
}

// ParseDate разбирает дату запроса (YYYY-MM-DD, UTC).
func ParseDate(v string) (datatypes.Date, error) {
	if v == "" {
		return datatypes.Date{}, booking.NewValidationError("date is required")
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		return datatypes.Date{}, booking.NewValidationError("invalid date, expected YYYY-MM-DD")
	}
	return datatypes.Date(t), nil
}

// Create проводит запрос через последовательность проверок (порядок
// значим: он определяет, какая из нескольких применимых ошибок всплывёт)
// и фиксирует бронь. Возвращает ID созданной брони.
func (s *BookingService) Create(ctx context.Context, rc booking.RequestContext, req CreateBookingRequest) (uuid.UUID, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return uuid.Nil, err
	}

	extent, slotID, err := s.resolveExtent(ctx, req)
	if err != nil {
		return uuid.Nil, err
	}

	var room *model.Room
	targetType := model.RoomType("")
	switch {
	case req.RoomID != nil:
		room, err = s.rooms.GetByID(ctx, *req.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, booking.NewNotFoundError("Room not found.")
			}
			return uuid.Nil, err
		}
		targetType = room.RoomType
	case req.RoomType != nil && *req.RoomType == model.RoomTypeShared:
		// Pooled-вариант: комнату выберет движок.
		targetType = model.RoomTypeShared
	default:
		return uuid.Nil, booking.NewValidationError("room is required")
	}

	// Кто просит: команда (конференц-залы) или пользователь (всё остальное).
	requester := booking.UserRequester(rc.UserID)
	if req.TeamID != nil {
		requester = booking.TeamRequester(*req.TeamID, rc.UserID)
	}

	// Совместимость вида requester-а с типом комнаты проверяется до любой
	// типоспецифичной логики.
	if !requester.CompatibleWith(targetType) {
		if requester.Kind == booking.RequesterTeam {
			return uuid.Nil, booking.NewValidationError("Team is only valid for conference rooms.")
		}
		return uuid.Nil, booking.NewValidationError("Team required for conference room.")
	}

	var created *model.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.bookings.WithTx(tx)

		switch targetType {
		case model.RoomTypeConference:
			b, err := s.allocateConference(ctx, repo, requester, room, date, extent, slotID)
			if err != nil {
				return err
			}
			created = b
		case model.RoomTypeShared:
			b, err := s.allocateShared(ctx, repo, requester, room, date, extent, slotID)
			if err != nil {
				return err
			}
			created = b
		case model.RoomTypePrivate:
			b, err := s.allocatePrivate(ctx, repo, requester, room, date, extent, slotID)
			if err != nil {
				return err
			}
			created = b
		default:
			return booking.NewValidationError("unknown room type")
		}
		return nil
	})
	if err != nil {
		// Проигравший гонку упирается в частичный уникальный индекс.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uuid.Nil, booking.NewConflictError(raceConflictReason(targetType))
		}
		if _, ok := booking.KindOf(err); ok {
			return uuid.Nil, err
		}
		s.log.Error("create booking", zap.Error(err))
		return uuid.Nil, err
	}

	return created.ID, nil
}

// resolveExtent разрешает экстент запроса: слот каталога или явная пара.
func (s *BookingService) resolveExtent(ctx context.Context, req CreateBookingRequest) (booking.TimeExtent, *uuid.UUID, error) {
	if req.TimeslotID != nil {
		slot, err := s.slots.GetByID(ctx, *req.TimeslotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return booking.TimeExtent{}, nil, booking.NewNotFoundError("Timeslot not found.")
			}
			return booking.TimeExtent{}, nil, err
		}
		extent, err := booking.NewTimeExtent(slot.StartTime, slot.EndTime)
		if err != nil {
			return booking.TimeExtent{}, nil, err
		}
		return extent, &slot.ID, nil
	}

	if req.StartTime == "" || req.EndTime == "" {
		return booking.TimeExtent{}, nil, booking.NewValidationError("time_slot or start_time/end_time is required")
	}
	extent, err := booking.NewTimeExtent(req.StartTime, req.EndTime)
	if err != nil {
		return booking.TimeExtent{}, nil, err
	}
	return extent, nil, nil
}

func (s *BookingService) allocateConference(
	ctx context.Context,
	repo repository.BookingRepository,
	requester booking.Requester,
	room *model.Room,
	date datatypes.Date,
	extent booking.TimeExtent,
	slotID *uuid.UUID,
) (*model.Booking, error) {
	team, err := s.teams.GetByID(ctx, requester.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.NewNotFoundError("Team not found.")
		}
		return nil, err
	}

	seats, err := s.teams.EligibleSeatCount(ctx, team.ID, MinEligibleAge)
	if err != nil {
		return nil, err
	}
	if seats < MinConferenceSeats {
		return nil, booking.NewValidationError("Team must have at least 3 members (age >= 10).")
	}

	if team.CreatedByID != requester.UserID {
		return nil, booking.NewForbiddenError("Only team lead can book conference rooms.")
	}

	n, err := repo.CountActiveOverlapping(ctx, room.ID, date, extent)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, booking.NewConflictError("No available room for the selected slot and type.")
	}

	// Команда — requester of record, user хранит оформившего лида.
	b := &model.Booking{
		RoomID:     room.ID,
		Date:       date,
		StartTime:  extent.Start,
		EndTime:    extent.End,
		SeatNo:     1,
		TimeslotID: slotID,
		UserID:     &requester.UserID,
		TeamID:     &team.ID,
		IsActive:   true,
	}
	if err := repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) allocateShared(
	ctx context.Context,
	repo repository.BookingRepository,
	requester booking.Requester,
	room *model.Room,
	date datatypes.Date,
	extent booking.TimeExtent,
	slotID *uuid.UUID,
) (*model.Booking, error) {
	// Одно shared-место на пользователя на слот, по всем shared-комнатам.
	held, err := repo.UserHasActiveSharedOverlap(ctx, requester.UserID, date, extent)
	if err != nil {
		return nil, err
	}
	if held {
		return nil, booking.NewConflictError("You already have a shared desk booking for this slot.")
	}

	var candidates []model.Room
	if room != nil {
		candidates = []model.Room{*room}
	} else {
		candidates, err = s.rooms.ListByType(ctx, model.RoomTypeShared)
		if err != nil {
			return nil, err
		}
	}

	for i := range candidates {
		cand := &candidates[i]
		n, err := repo.CountActiveOverlapping(ctx, cand.ID, date, extent)
		if err != nil {
			return nil, err
		}
		if n >= int64(cand.SharedCapacity()) {
			continue
		}

		seat, err := s.firstFreeSeat(ctx, repo, cand, date, extent)
		if err != nil {
			return nil, err
		}
		if seat == 0 {
			continue
		}

		b := &model.Booking{
			RoomID:     cand.ID,
			Date:       date,
			StartTime:  extent.Start,
			EndTime:    extent.End,
			SeatNo:     seat,
			TimeslotID: slotID,
			UserID:     &requester.UserID,
			IsActive:   true,
		}
		if err := repo.Create(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	return nil, booking.NewConflictError("No available shared desk for the selected slot.")
}

// firstFreeSeat подбирает наименьший свободный номер места для точно
// совпадающего (room, date, extent); 0 — свободных мест нет.
func (s *BookingService) firstFreeSeat(
	ctx context.Context,
	repo repository.BookingRepository,
	room *model.Room,
	date datatypes.Date,
	extent booking.TimeExtent,
) (int, error) {
	taken, err := repo.ActiveSeatNumbers(ctx, room.ID, date, extent)
	if err != nil {
		return 0, err
	}
	occupied := make(map[int]struct{}, len(taken))
	for _, seat := range taken {
		occupied[seat] = struct{}{}
	}
	for seat := 1; seat <= room.SharedCapacity(); seat++ {
		if _, ok := occupied[seat]; !ok {
			return seat, nil
		}
	}
	return 0, nil
}

func (s *BookingService) allocatePrivate(
	ctx context.Context,
	repo repository.BookingRepository,
	requester booking.Requester,
	room *model.Room,
	date datatypes.Date,
	extent booking.TimeExtent,
	slotID *uuid.UUID,
) (*model.Booking, error) {
	n, err := repo.CountActiveOverlapping(ctx, room.ID, date, extent)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, booking.NewConflictError("No available room for the selected slot and type.")
	}

	b := &model.Booking{
		RoomID:     room.ID,
		Date:       date,
		StartTime:  extent.Start,
		EndTime:    extent.End,
		SeatNo:     1,
		TimeslotID: slotID,
		UserID:     &requester.UserID,
		IsActive:   true,
	}
	if err := repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// raceConflictReason — причина отказа проигравшему гонку: та же формулировка,
// что и у отказа на пути чтения для этого типа комнаты.
func raceConflictReason(roomType model.RoomType) string {
	if roomType == model.RoomTypeShared {
		return "No available shared desk for the selected slot."
	}
	return "No available room for the selected slot and type."
}

// Cancel проверяет авторизацию и освобождает бронь. Неизвестный ID и уже
// отменённая бронь дают один и тот же исход, чтобы не раскрывать
// существование чужих броней.
func (s *BookingService) Cancel(ctx context.Context, rc booking.RequestContext, id uuid.UUID) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking.NewNotFoundError("Booking not found or already cancelled.")
		}
		return err
	}
	if !b.IsActive {
		return booking.NewNotFoundError("Booking not found or already cancelled.")
	}

	if b.IsTeamBooking() {
		if b.Team == nil || b.Team.CreatedByID != rc.UserID {
			return booking.NewForbiddenError("Only team lead can cancel this booking.")
		}
	} else {
		if b.UserID == nil || *b.UserID != rc.UserID {
			return booking.NewForbiddenError("Only the booking user can cancel this booking.")
		}
	}

	// Условный UPDATE закрывает гонку с конкурентной отменой: второй
	// претендент не затронет ни одной строки.
	rows, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return booking.NewNotFoundError("Booking not found or already cancelled.")
	}
	return nil
}

// List возвращает активные брони: админу — все, пользователю — свои и
// команд, в которых он состоит.
func (s *BookingService) List(ctx context.Context, rc booking.RequestContext) ([]model.Booking, error) {
	if rc.IsAdmin() {
		return s.bookings.ListActive(ctx)
	}
	return s.bookings.ListVisibleTo(ctx, rc.UserID)
}
