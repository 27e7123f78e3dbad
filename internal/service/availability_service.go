package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
)

// Запрос доступности: дата обязательна, тип комнаты и явный экстент —
// опциональны (без экстента берётся вся сетка слотов).
type AvailabilityQuery struct {
	Date      string // YYYY-MM-DD
	RoomType  *model.RoomType
	StartTime string
	EndTime   string
	Page      int
	PageSize  int
}

// Свободный экстент комнаты; для слота каталога сохраняется его ID.
type AvailableExtent struct {
	TimeslotID *uuid.UUID `json:"timeslot_id,omitempty"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
}

type RoomAvailability struct {
	Room model.Room        `json:"room"`
	Free []AvailableExtent `json:"free"`
}

// AvailabilityService — read-only проекция над журналом, каталогом и
// сеткой слотов: «что свободно, когда».
type AvailabilityService struct {
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	slots    repository.TimeslotRepository
}

func NewAvailabilityService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	slots repository.TimeslotRepository,
) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, rooms: rooms, slots: slots}
}

// ListAvailable отдаёт комнаты в стабильном порядке с их свободными
// экстентами. Страница нарезается по измерению комнат; комната без единого
// свободного экстента опускается из выдачи (и никогда не валит страницу).
func (s *AvailabilityService) ListAvailable(ctx context.Context, q AvailabilityQuery) (booking.Page[RoomAvailability], error) {
	date, err := ParseDate(q.Date)
	if err != nil {
		return booking.Page[RoomAvailability]{}, err
	}

	extents, err := s.resolveExtents(ctx, q)
	if err != nil {
		return booking.Page[RoomAvailability]{}, err
	}

	var rooms []model.Room
	if q.RoomType != nil {
		rooms, err = s.rooms.ListByType(ctx, *q.RoomType)
	} else {
		rooms, err = s.rooms.List(ctx)
	}
	if err != nil {
		return booking.Page[RoomAvailability]{}, err
	}

	page := booking.Paginate(rooms, q.Page, q.PageSize)

	active, err := s.bookings.ListActiveByDate(ctx, date)
	if err != nil {
		return booking.Page[RoomAvailability]{}, err
	}
	byRoom := make(map[uuid.UUID][]model.Booking, len(active))
	for _, b := range active {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	items := make([]RoomAvailability, 0, len(page.Items))
	for _, room := range page.Items {
		free := freeExtents(&room, byRoom[room.ID], extents)
		if len(free) == 0 {
			continue
		}
		items = append(items, RoomAvailability{Room: room, Free: free})
	}

	return booking.Page[RoomAvailability]{
		Items:    items,
		Page:     page.Page,
		PageSize: page.PageSize,
		HasNext:  page.HasNext,
		HasPrev:  page.HasPrev,
		Total:    page.Total,
	}, nil
}

func (s *AvailabilityService) resolveExtents(ctx context.Context, q AvailabilityQuery) ([]AvailableExtent, error) {
	if q.StartTime != "" || q.EndTime != "" {
		extent, err := booking.NewTimeExtent(q.StartTime, q.EndTime)
		if err != nil {
			return nil, err
		}
		return []AvailableExtent{{StartTime: extent.Start, EndTime: extent.End}}, nil
	}

	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, err
	}
	extents := make([]AvailableExtent, 0, len(slots))
	for i := range slots {
		id := slots[i].ID
		extents = append(extents, AvailableExtent{
			TimeslotID: &id,
			StartTime:  slots[i].StartTime,
			EndTime:    slots[i].EndTime,
		})
	}
	return extents, nil
}

// freeExtents оставляет экстенты, на которые комнату ещё можно бронировать:
// shared — пока число пересекающихся активных броней меньше вместимости,
// остальные — пока пересечений нет вовсе.
func freeExtents(room *model.Room, active []model.Booking, extents []AvailableExtent) []AvailableExtent {
	var free []AvailableExtent
	for _, ext := range extents {
		candidate := booking.TimeExtent{Start: ext.StartTime, End: ext.EndTime}
		overlapping := 0
		for i := range active {
			held := booking.TimeExtent{Start: active[i].StartTime, End: active[i].EndTime}
			if candidate.Overlaps(held) {
				overlapping++
			}
		}
		switch room.RoomType {
		case model.RoomTypeShared:
			if overlapping < room.SharedCapacity() {
				free = append(free, ext)
			}
		default:
			if overlapping == 0 {
				free = append(free, ext)
			}
		}
	}
	return free
}
