package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// bookings — журнал бронирований (system of record).
//
// Строки никогда не удаляются: отмена переводит IsActive в false, история
// сохраняется. Частичный уникальный индекс uniq_active_booking_extent по
// (room_id, date, start_time, end_time, seat_no) среди активных строк —
// единственный механизм корректности на уровне хранилища: гонка двух
// создающих транзакций, прошедших проверку чтением, разрешается на записи,
// проигравшая получает ошибку дубликата.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	RoomID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_booking_extent,where:is_active" json:"room_id"`
	Date   datatypes.Date `gorm:"type:date;not null;uniqueIndex:uniq_active_booking_extent" json:"date"`

	// Экстент хранится явно ("HH:MM"), слот каталога — необязательная
	// ссылка на происхождение. Так журнал поддерживает и сетку, и
	// произвольные интервалы одной схемой.
	StartTime string `gorm:"type:varchar(5);not null;uniqueIndex:uniq_active_booking_extent" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null;uniqueIndex:uniq_active_booking_extent" json:"end_time"`

	// Номер места внутри (room, date, extent): всегда 1 для private и
	// conference, 1..capacity для shared. Благодаря нему уникальный индекс
	// действует и для shared-комнат.
	SeatNo int `gorm:"not null;default:1;uniqueIndex:uniq_active_booking_extent" json:"seat_no"`

	TimeslotID *uuid.UUID `gorm:"type:uuid;index" json:"time_slot,omitempty"`

	// Ровно один requester of record: team задан — бронь командная (user
	// при этом хранит, кто из лидов её оформил), иначе — пользовательская.
	UserID *uuid.UUID `gorm:"type:uuid;index;check:booking_must_have_requester,user_id IS NOT NULL OR team_id IS NOT NULL" json:"user,omitempty"`
	TeamID *uuid.UUID `gorm:"type:uuid;index" json:"team,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"timestamp"`

	IsActive bool `gorm:"not null;default:true;index" json:"is_active"`

	// Навигационные поля. Журнал никогда не теряет строк: комнату и
	// пользователя с историей удалить нельзя, удаление команды лишь
	// обнуляет ссылку (user_id лида остаётся).
	Room     *Room     `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room_detail,omitempty"`
	Timeslot *Timeslot `gorm:"foreignKey:TimeslotID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"timeslot_detail,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user_detail,omitempty"`
	Team     *Team     `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"team_detail,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsTeamBooking сообщает, является ли бронь командной.
func (b *Booking) IsTeamBooking() bool {
	return b.TeamID != nil
}
