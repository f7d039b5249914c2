package dto

import "github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"

type CreateReportRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

type ReportListResponse struct {
	Reports []models.Report `json:"reports"`
	Count   int             `json:"count"`
}
