package user

import "time"

type User struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;not null"`
	Picture      string    `gorm:"column:picture"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type Session struct {
	ID           int64     `gorm:"primaryKey"`
	SessionToken string    `gorm:"column:session_token;uniqueIndex;not null"`
	UserID       string    `gorm:"column:user_id;index;not null"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string {
	return "user_sessions"
}
