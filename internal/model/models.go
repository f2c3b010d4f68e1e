package model

import (
	"time"
)

// User 用户模型（单一所有者账户，只能通过 watchlistctl 创建）
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" gorm:"size:20"`
	Username     string    `json:"username" db:"username" gorm:"size:20;unique"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"size:128"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID       int
	Username string
	Name     string
}

// Movie 电影条目
type Movie struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" gorm:"size:60"`
	Year      string    `json:"year" db:"year" gorm:"size:4"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
