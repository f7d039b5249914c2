package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/traffic"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/upstream"
)

// RouteClient is the routing half of the upstream client.
type RouteClient interface {
	Route(ctx context.Context, req upstream.RouteRequest) (*upstream.RoutesResponse, error)
	AnalyzeRoutes(ctx context.Context, req upstream.AnalyzeRoutesRequest) (*upstream.RoutesResponse, error)
}

type AnnotatedRoute struct {
	upstream.Route
	CongestionPercent int           `json:"congestion_percent"`
	SpeedEstimate     int           `json:"speed_estimate_kmh"`
	FuelCost          *traffic.Cost `json:"fuel_cost,omitempty"`
}

type RoutePlan struct {
	Routes          []AnnotatedRoute `json:"routes"`
	AIInsight       string           `json:"ai_insight,omitempty"`
	AnalysisContext any              `json:"analysis_context,omitempty"`
}

type RoutingService struct {
	client RouteClient
}

func NewRoutingService(client RouteClient) *RoutingService {
	return &RoutingService{client: client}
}

// Route plans a trip. vehicle is optional; when set every route carries a
// fuel cost estimate.
func (s *RoutingService) Route(ctx context.Context, req upstream.RouteRequest, vehicle string) (*RoutePlan, error) {
	if vehicle != "" {
		if _, err := traffic.FuelCost(vehicle, 0); err != nil {
			return nil, err
		}
	}
	resp, err := s.client.Route(ctx, req)
	if err != nil {
		return nil, err
	}
	return Annotate(resp, vehicle), nil
}

func (s *RoutingService) Analyze(ctx context.Context, req upstream.AnalyzeRoutesRequest, vehicle string) (*RoutePlan, error) {
	if vehicle != "" {
		if _, err := traffic.FuelCost(vehicle, 0); err != nil {
			return nil, err
		}
	}
	resp, err := s.client.AnalyzeRoutes(ctx, req)
	if err != nil {
		return nil, err
	}
	return Annotate(resp, vehicle), nil
}

// Annotate adds congestion gauges and, when vehicle is known, fuel costs.
func Annotate(resp *upstream.RoutesResponse, vehicle string) *RoutePlan {
	plan := &RoutePlan{Routes: []AnnotatedRoute{}}
	if resp == nil {
		return plan
	}
	plan.AIInsight = resp.AIInsight
	if len(resp.AnalysisContext) > 0 {
		plan.AnalysisContext = resp.AnalysisContext
	}
	for _, r := range resp.Routes {
		ar := AnnotatedRoute{
			Route:             r,
			CongestionPercent: traffic.CongestionPercent(r.CongestionLevel),
			SpeedEstimate:     traffic.SpeedEstimate(r.CongestionLevel),
		}
		if vehicle != "" {
			if cost, err := traffic.FuelCost(vehicle, r.DistanceKm); err == nil {
				ar.FuelCost = &cost
			}
		}
		plan.Routes = append(plan.Routes, ar)
	}
	return plan
}
