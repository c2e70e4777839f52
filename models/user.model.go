package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'Employee'"` // Employee, Manager, HR
	ManagerID *uint      `json:"manager_id" gorm:"index"`        // Self reference, employees report to a manager
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `json:"-" gorm:"default:false"`
}

// DisplayName returns the user's full name, falling back to the login email
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
