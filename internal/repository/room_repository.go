package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Все комнаты в стабильном порядке (по имени, затем по ID).
	List(ctx context.Context) ([]model.Room, error)
	// Комнаты заданного типа в том же стабильном порядке: от него зависит
	// детерминизм выбора shared-комнаты движком.
	ListByType(ctx context.Context, roomType model.RoomType) ([]model.Room, error)
}

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *GormRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("id = ?", room.ID).
		Updates(map[string]any{
			"name":      room.Name,
			"room_type": room.RoomType,
			"capacity":  room.Capacity,
		}).Error
}

func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id).Error
}

func (r *GormRoomRepository) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *GormRoomRepository) ListByType(ctx context.Context, roomType model.RoomType) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("room_type = ?", roomType).
		Order("name ASC, id ASC").
		Find(&rooms).Error
	return rooms, err
}
