package models

import "time"

// Build status rollup values kept on a project. A project that has never
// been built carries StatusNone.
const (
	StatusNone    = "none"
	StatusSuccess = "success"
	StatusFail    = "fail"
)

type Project struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"uniqueIndex;not null" json:"name"`
	Repo            string    `gorm:"not null" json:"repo"`
	LastBuildStatus string    `gorm:"default:'none'" json:"last_build_status"`
	CreatedAt       time.Time `json:"created_at"`
	Builds          []Build   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
