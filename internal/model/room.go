package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Тип помещения.
type RoomType string

const (
	RoomTypePrivate    RoomType = "private"
	RoomTypeConference RoomType = "conference"
	RoomTypeShared     RoomType = "shared"
)

// Вместимость shared-комнаты по умолчанию: сколько независимых броней
// может сосуществовать на один (date, extent).
const DefaultSharedCapacity = 4

// rooms
type Room struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string   `gorm:"type:varchar(100);not null;index" json:"name"`
	RoomType RoomType `gorm:"type:varchar(20);not null;index" json:"room_type"`

	// Для private/conference может быть не задана; для shared ограничивает
	// число одновременных броней на слот.
	Capacity *int `gorm:"type:integer" json:"capacity"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SharedCapacity возвращает действующий лимит мест shared-комнаты.
func (r *Room) SharedCapacity() int {
	if r.Capacity != nil && *r.Capacity > 0 {
		return *r.Capacity
	}
	return DefaultSharedCapacity
}
