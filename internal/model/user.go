package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Роль пользователя в системе.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	// bcrypt-хеш, наружу никогда не отдаётся.
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	Age    int      `gorm:"not null" json:"age"`
	Gender string   `gorm:"type:varchar(10)" json:"gender"`
	Role   UserRole `gorm:"type:varchar(10);not null;default:'user';index" json:"role"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
