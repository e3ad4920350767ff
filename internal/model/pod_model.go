package model

import (
	"time"

	"gorm.io/datatypes"
)

type Pod struct {
	Id        int                         `gorm:"primaryKey;autoIncrement:false"`
	Name      string                      `gorm:"type:varchar(50);not null"`
	Available bool                        `gorm:"default:true"`
	TimeSlots datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime"`
}

func (Pod) TableName() string {
	return "pods"
}

type Booking struct {
	Id        string    `gorm:"type:varchar(64);primaryKey"`
	PodId     int       `gorm:"not null;index"`
	UserId    string    `gorm:"type:varchar(64);not null;index"`
	TimeSlot  string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}
