package models

import "time"

// ErrorLog is an append-only record of an unexpected request failure.
type ErrorLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	LogTime    time.Time `gorm:"not null;index" json:"log_time"`
	LogTimeUTC time.Time `gorm:"not null" json:"log_time_utc"`
	Message    string    `gorm:"not null" json:"message"`
}
