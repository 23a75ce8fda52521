package models

import (
	"encoding/json"
	"time"
)

// DashboardCache stores a precomputed dashboard payload with a TTL
type DashboardCache struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CacheKey  string          `gorm:"index;not null" json:"cache_key"`
	Data      json.RawMessage `gorm:"type:jsonb" json:"data"`
	ExpiresAt time.Time       `gorm:"index" json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for DashboardCache
func (DashboardCache) TableName() string {
	return "dashboard_caches"
}

// DashboardOverview is the aggregate view shown on the admin dashboard
type DashboardOverview struct {
	AcademicYear     string  `json:"academic_year"`
	StudentCount     int64   `json:"student_count"`
	TeacherCount     int64   `json:"teacher_count"`
	ClassCount       int64   `json:"class_count"`
	TotalCollected   float64 `json:"total_collected"`
	TotalOutstanding float64 `json:"total_outstanding"`
	LateReceipts     int64   `json:"late_receipts"`
	PendingReceipts  int64   `json:"pending_receipts"`
}

// RevenuePoint is one bucket of the monthly collection trend
type RevenuePoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}
