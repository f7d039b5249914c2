package dto

import "github.com/ahmetcoskunkizilkaya/trafficwatch/internal/upstream"

type RouteRequest struct {
	Start       upstream.GeoPoint `json:"start"`
	Destination upstream.GeoPoint `json:"destination"`
	Vehicle     string            `json:"vehicle,omitempty"`
}

type AnalyzeRoutesRequest struct {
	Start          upstream.GeoPoint `json:"start"`
	Destination    upstream.GeoPoint `json:"destination"`
	SourceName     string            `json:"source_name,omitempty"`
	DestName       string            `json:"dest_name,omitempty"`
	UserPreference string            `json:"user_preference,omitempty"`
	Vehicle        string            `json:"vehicle,omitempty"`
}
