package models

import (
	"time"

	"gorm.io/datatypes"
)

// PredictionSnapshot keeps the last successful prediction payload per city.
type PredictionSnapshot struct {
	City      string         `gorm:"size:100;primaryKey" json:"city"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	FetchedAt time.Time      `gorm:"not null" json:"fetched_at"`
}
