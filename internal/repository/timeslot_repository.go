package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
)

type TimeslotRepository interface {
	Create(ctx context.Context, slot *model.Timeslot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Timeslot, error)
	Update(ctx context.Context, slot *model.Timeslot) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Вся сетка слотов по возрастанию начала.
	List(ctx context.Context) ([]model.Timeslot, error)
}

type GormTimeslotRepository struct {
	db *gorm.DB
}

func NewGormTimeslotRepository(db *gorm.DB) *GormTimeslotRepository {
	return &GormTimeslotRepository{db: db}
}

func (r *GormTimeslotRepository) Create(ctx context.Context, slot *model.Timeslot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *GormTimeslotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Timeslot, error) {
	var slot model.Timeslot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormTimeslotRepository) Update(ctx context.Context, slot *model.Timeslot) error {
	return r.db.WithContext(ctx).
		Model(&model.Timeslot{}).
		Where("id = ?", slot.ID).
		Updates(map[string]any{
			"start_time": slot.StartTime,
			"end_time":   slot.EndTime,
		}).Error
}

func (r *GormTimeslotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Timeslot{}, "id = ?", id).Error
}

func (r *GormTimeslotRepository) List(ctx context.Context) ([]model.Timeslot, error) {
	var slots []model.Timeslot
	err := r.db.WithContext(ctx).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}
