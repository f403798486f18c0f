package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	NIB          string    `gorm:"column:nib;size:13;not null" json:"nib"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	AgentID      *uint     `json:"agent_id,omitempty"`
	Agent        *Agent    `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor returns the request-scoped identity for u.
func (u *User) Actor() *Actor {
	return &Actor{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// Agent is a rental agent that owns units and files rentals.
type Agent struct {
	Base
	Name  string `gorm:"not null;size:255" json:"name"`
	Units []Unit `gorm:"foreignKey:AgentID" json:"units,omitempty"`
}
