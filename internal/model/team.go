package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// teams
//
// Команда для бронирования конференц-залов. Создатель (lead) фиксируется
// в CreatedByID и после создания не меняется; он же автоматически попадает
// в участники (см. TeamService.Create).
type Team struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"type:varchar(100);not null" json:"name"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Навигационные поля.
	CreatedBy *User  `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Members   []User `gorm:"many2many:team_members;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"members,omitempty"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// team_members — join-таблица состава команды (комбинированный PK).
type TeamMember struct {
	TeamID uuid.UUID `gorm:"type:uuid;primaryKey" json:"team_id"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	CreatedAt time.Time `gorm:"not null"`

	Team *Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
