package upstream

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/alerts"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Prediction is the /api/predict payload. Sections the service only passes
// through stay as raw JSON.
type Prediction struct {
	Prediction      json.RawMessage   `json:"prediction,omitempty"`
	Context         PredictionContext `json:"context"`
	LiveData        json.RawMessage   `json:"live_data,omitempty"`
	Analysis        json.RawMessage   `json:"analysis,omitempty"`
	SmartAnalysis   json.RawMessage   `json:"smart_analysis,omitempty"`
	Forecast        []ForecastPoint   `json:"forecast,omitempty"`
	Alerts          []alerts.Alert    `json:"alerts,omitempty"`
	TrafficBulletin string            `json:"traffic_bulletin,omitempty"`
}

type PredictionContext struct {
	Weather json.RawMessage `json:"weather,omitempty"`
	Events  EventContext    `json:"events"`
}

type EventContext struct {
	Details EventDetails `json:"Details"`
}

type EventDetails struct {
	Name   string                `json:"Name,omitempty"`
	Events []alerts.ScrapedEvent `json:"Events,omitempty"`
}

type ForecastPoint struct {
	Hour            int             `json:"hour"`
	Step            json.RawMessage `json:"step,omitempty"`
	CongestionLevel string          `json:"congestion_level"`
	IsBottleneck    bool            `json:"is_bottleneck"`
	Confidence      *float64        `json:"confidence,omitempty"`
}

// Empty reports whether the payload carries nothing worth displaying.
func (p *Prediction) Empty() bool {
	return isNull(p.Prediction) && isNull(p.LiveData) && isNull(p.Analysis) && isNull(p.SmartAnalysis) &&
		len(p.Forecast) == 0 && len(p.Alerts) == 0 &&
		len(p.Context.Events.Details.Events) == 0 && p.TrafficBulletin == ""
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

type LocationsResponse struct {
	Locations []string `json:"locations"`
}

type RouteRequest struct {
	Start       GeoPoint `json:"start"`
	Destination GeoPoint `json:"destination"`
}

type AnalyzeRoutesRequest struct {
	Start          GeoPoint `json:"start"`
	Destination    GeoPoint `json:"destination"`
	SourceName     string   `json:"source_name,omitempty"`
	DestName       string   `json:"dest_name,omitempty"`
	UserPreference string   `json:"-"`
}

type Route struct {
	Points          [][2]float64 `json:"points"`
	DistanceKm      float64      `json:"distance_km"`
	EtaMin          float64      `json:"eta_min"`
	CongestionLevel string       `json:"congestion_level"`
}

type RoutesResponse struct {
	Routes          []Route         `json:"routes"`
	AIInsight       string          `json:"ai_insight,omitempty"`
	AnalysisContext json.RawMessage `json:"analysis_context,omitempty"`
}

type SimulateRequest struct {
	Location  string  `json:"location"`
	Scenario  string  `json:"scenario"`
	Intensity float64 `json:"intensity"`
}

type SimulateResponse struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
}

type StationsRequest struct {
	Start       *GeoPoint `json:"start"`
	Destination *GeoPoint `json:"destination"`
}

type StationsResponse struct {
	Status string       `json:"status"`
	Data   StationsData `json:"data"`
}

type StationsData struct {
	FuelStations []json.RawMessage `json:"fuel_stations"`
	EVChargers   []json.RawMessage `json:"ev_chargers"`
}

type CommunityFeed struct {
	Reports []json.RawMessage `json:"reports"`
}

type CommunityReportRequest struct {
	Location string `json:"location"`
	Feedback string `json:"feedback"`
	Severity string `json:"severity"`
}

type CommunityReportResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
