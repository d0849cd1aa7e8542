package models

import "time"

// Build is one simulated execution attempt for a project. Builds are
// immutable once written; they only disappear when their project is deleted.
type Build struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"index;not null" json:"project_id"`
	Status    string    `gorm:"not null" json:"status"` // pending, success, fail
	DurationS float64   `json:"duration_s"`
	Logs      string    `gorm:"type:text" json:"logs"`
	CreatedAt time.Time `json:"created_at"`
}
