package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// timeslots — каталог фиксированной сетки слотов.
//
// Время хранится как строка "HH:MM" с ведущими нулями: такие строки
// сравниваются лексикографически так же, как по времени, и в Go, и в SQL.
type Timeslot struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (t *Timeslot) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
