package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;size:50;uniqueIndex:idx_users_username;not null"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex:idx_users_email;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	Role         string    `gorm:"column:role;size:16;not null;default:USER"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
