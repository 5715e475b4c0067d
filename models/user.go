package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      *string   `json:"name"`
	Role      string    `gorm:"not null;default:'user'" json:"role"` // user, admin
	CreatedAt time.Time `json:"created_at"`
}
