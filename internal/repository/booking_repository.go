package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
)

type BookingRepository interface {
	// WithTx возвращает репозиторий, привязанный к транзакции tx.
	WithTx(tx *gorm.DB) BookingRepository
	// Создать бронь.
	Create(ctx context.Context, b *model.Booking) error
	// Найти бронь по ID (с комнатой и командой).
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// Число активных броней комнаты, пересекающихся с экстентом на дату.
	CountActiveOverlapping(ctx context.Context, roomID uuid.UUID, date datatypes.Date, extent booking.TimeExtent) (int64, error)
	// Занятые номера мест для точно совпадающего (room, date, extent).
	ActiveSeatNumbers(ctx context.Context, roomID uuid.UUID, date datatypes.Date, extent booking.TimeExtent) ([]int, error)
	// Держит ли пользователь активную shared-бронь, пересекающуюся с
	// экстентом на эту дату, в любой shared-комнате.
	UserHasActiveSharedOverlap(ctx context.Context, userID uuid.UUID, date datatypes.Date, extent booking.TimeExtent) (bool, error)
	// Условная отмена: is_active true->false, возвращает число затронутых строк.
	Cancel(ctx context.Context, id uuid.UUID) (int64, error)
	// Все активные брони.
	ListActive(ctx context.Context) ([]model.Booking, error)
	// Активные брони, видимые пользователю: свои или команд, где он участник.
	ListVisibleTo(ctx context.Context, userID uuid.UUID) ([]model.Booking, error)
	// Все активные брони на дату (для запроса доступности).
	ListActiveByDate(ctx context.Context, date datatypes.Date) ([]model.Booking, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) WithTx(tx *gorm.DB) BookingRepository {
	return &GormBookingRepository{db: tx}
}

func (r *GormBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Team").
		First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) CountActiveOverlapping(
	ctx context.Context,
	roomID uuid.UUID,
	date datatypes.Date,
	extent booking.TimeExtent,
) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("room_id = ?", roomID).
		Where("date = ?", date).
		Where("is_active = ?", true).
		Where("start_time < ? AND end_time > ?", extent.End, extent.Start).
		Count(&n).Error
	return n, err
}

func (r *GormBookingRepository) ActiveSeatNumbers(
	ctx context.Context,
	roomID uuid.UUID,
	date datatypes.Date,
	extent booking.TimeExtent,
) ([]int, error) {
	var seats []int
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("room_id = ?", roomID).
		Where("date = ?", date).
		Where("is_active = ?", true).
		Where("start_time = ? AND end_time = ?", extent.Start, extent.End).
		Order("seat_no ASC").
		Pluck("seat_no", &seats).Error
	return seats, err
}

func (r *GormBookingRepository) UserHasActiveSharedOverlap(
	ctx context.Context,
	userID uuid.UUID,
	date datatypes.Date,
	extent booking.TimeExtent,
) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.room_type = ?", model.RoomTypeShared).
		Where("bookings.user_id = ?", userID).
		Where("bookings.date = ?", date).
		Where("bookings.is_active = ?", true).
		Where("bookings.start_time < ? AND bookings.end_time > ?", extent.End, extent.Start).
		Count(&n).Error
	return n > 0, err
}

func (r *GormBookingRepository) Cancel(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (r *GormBookingRepository) ListActive(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("User").
		Preload("Team").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) ListVisibleTo(ctx context.Context, userID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	memberTeams := r.db.
		Model(&model.TeamMember{}).
		Select("team_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("User").
		Preload("Team").
		Where("is_active = ?", true).
		Where("user_id = ? OR team_id IN (?)", userID, memberTeams).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) ListActiveByDate(ctx context.Context, date datatypes.Date) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Where("is_active = ?", true).
		Find(&bookings).Error
	return bookings, err
}
