package models

import (
	"time"
)

// User.Password holds a bcrypt hash, never the submitted plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(120);not null" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
