package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Products     []string  `json:"products"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
