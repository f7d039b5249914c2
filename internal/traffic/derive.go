// Package traffic holds the small derivations the dashboard applies to
// upstream congestion labels and route distances.
package traffic

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownVehicle = errors.New("unknown vehicle type")

type level int

const (
	levelLow level = iota
	levelMedium
	levelHigh
)

func parseLevel(label string) level {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "high", "critical", "severe":
		return levelHigh
	case "medium", "moderate":
		return levelMedium
	default:
		return levelLow
	}
}

// CongestionPercent converts a congestion label into the gauge value shown
// on trend charts.
func CongestionPercent(label string) int {
	switch parseLevel(label) {
	case levelHigh:
		return 90
	case levelMedium:
		return 60
	default:
		return 30
	}
}

// SpeedEstimate is the average speed in km/h assumed for a congestion label.
func SpeedEstimate(label string) int {
	switch parseLevel(label) {
	case levelHigh:
		return 20
	case levelMedium:
		return 40
	default:
		return 80
	}
}

type fuelProfile struct {
	efficiency float64 // km per unit
	price      float64 // INR per unit
	unit       string
}

var fuelTable = map[string]fuelProfile{
	"petrol": {efficiency: 15, price: 105, unit: "l"},
	"diesel": {efficiency: 20, price: 92, unit: "l"},
	"cng":    {efficiency: 25, price: 76, unit: "kg"},
	"ev":     {efficiency: 7, price: 9, unit: "kWh"},
}

// Cost is the estimated fuel use and spend for a trip.
type Cost struct {
	Vehicle  string  `json:"vehicle"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Rupees   float64 `json:"rupees"`
}

// FuelCost estimates trip cost for a vehicle type over distanceKm.
func FuelCost(vehicle string, distanceKm float64) (Cost, error) {
	v := strings.ToLower(strings.TrimSpace(vehicle))
	p, ok := fuelTable[v]
	if !ok {
		return Cost{}, fmt.Errorf("%w: %q", ErrUnknownVehicle, vehicle)
	}
	if distanceKm < 0 {
		distanceKm = 0
	}
	qty := distanceKm / p.efficiency
	return Cost{
		Vehicle:  v,
		Quantity: round2(qty),
		Unit:     p.unit,
		Rupees:   round2(qty * p.price),
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
