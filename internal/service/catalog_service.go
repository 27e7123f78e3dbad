package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
)

// CatalogService — админский CRUD над каталогами комнат и слотов.
// Бизнес-логики здесь нет, только валидация входа; движок читает каталоги
// через репозитории.
type CatalogService struct {
	rooms repository.RoomRepository
	slots repository.TimeslotRepository
}

func NewCatalogService(rooms repository.RoomRepository, slots repository.TimeslotRepository) *CatalogService {
	return &CatalogService{rooms: rooms, slots: slots}
}

type RoomInput struct {
	Name     string `json:"name"`
	RoomType string `json:"room_type"`
	Capacity *int   `json:"capacity"`
}

func (in RoomInput) validate() (model.RoomType, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", booking.NewValidationError("name is required")
	}
	switch model.RoomType(in.RoomType) {
	case model.RoomTypePrivate, model.RoomTypeConference, model.RoomTypeShared:
		return model.RoomType(in.RoomType), nil
	}
	return "", booking.NewValidationError("room_type must be private, conference or shared")
}

func (s *CatalogService) CreateRoom(ctx context.Context, in RoomInput) (*model.Room, error) {
	roomType, err := in.validate()
	if err != nil {
		return nil, err
	}
	room := &model.Room{
		Name:     strings.TrimSpace(in.Name),
		RoomType: roomType,
		Capacity: in.Capacity,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *CatalogService) UpdateRoom(ctx context.Context, id uuid.UUID, in RoomInput) (*model.Room, error) {
	roomType, err := in.validate()
	if err != nil {
		return nil, err
	}
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Name = strings.TrimSpace(in.Name)
	room.RoomType = roomType
	room.Capacity = in.Capacity
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return s.getRoom(ctx, id)
}

func (s *CatalogService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getRoom(ctx, id); err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		// Журнал держит комнату через RESTRICT.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return booking.NewConflictError("Room has bookings and cannot be deleted.")
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.rooms.List(ctx)
}

func (s *CatalogService) getRoom(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.NewNotFoundError("Room not found.")
		}
		return nil, err
	}
	return room, nil
}

type TimeslotInput struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *CatalogService) CreateTimeslot(ctx context.Context, in TimeslotInput) (*model.Timeslot, error) {
	extent, err := booking.NewTimeExtent(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	slot := &model.Timeslot{StartTime: extent.Start, EndTime: extent.End}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *CatalogService) UpdateTimeslot(ctx context.Context, id uuid.UUID, in TimeslotInput) (*model.Timeslot, error) {
	extent, err := booking.NewTimeExtent(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	slot, err := s.getTimeslot(ctx, id)
	if err != nil {
		return nil, err
	}
	slot.StartTime = extent.Start
	slot.EndTime = extent.End
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, err
	}
	return s.getTimeslot(ctx, id)
}

func (s *CatalogService) DeleteTimeslot(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getTimeslot(ctx, id); err != nil {
		return err
	}
	return s.slots.Delete(ctx, id)
}

func (s *CatalogService) ListTimeslots(ctx context.Context) ([]model.Timeslot, error) {
	return s.slots.List(ctx)
}

func (s *CatalogService) getTimeslot(ctx context.Context, id uuid.UUID) (*model.Timeslot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.NewNotFoundError("Timeslot not found.")
		}
		return nil, err
	}
	return slot, nil
}
