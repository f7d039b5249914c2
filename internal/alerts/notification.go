// Package alerts normalises system alerts and scraped news events into a
// single notification list with a severity bucket per item.
package alerts

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityWeather  Severity = "weather"
	SeveritySuccess  Severity = "success"
	SeverityInfo     Severity = "info"
)

// Color is the display colour the dashboard uses for the bucket.
func (s Severity) Color() string {
	switch s {
	case SeverityCritical:
		return "red"
	case SeverityWarning:
		return "orange"
	case SeverityWeather:
		return "blue"
	case SeveritySuccess:
		return "green"
	default:
		return "gray"
	}
}

// Classify maps a free-form type label to its severity bucket. It is total
// and ignores case.
func Classify(label string) Severity {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "CRITICAL", "HIGH":
		return SeverityCritical
	case "WARNING", "MEDIUM":
		return SeverityWarning
	case "WEATHER":
		return SeverityWeather
	case "SUCCESS":
		return SeveritySuccess
	default:
		return SeverityInfo
	}
}

type Kind string

const (
	KindAlert Kind = "alert"
	KindEvent Kind = "event"
)

// Notification is either an Alert or a ScrapedEvent.
type Notification interface {
	Kind() Kind
	Severity() Severity
	View() View
}

// Alert is a system-generated alert from the prediction payload.
type Alert struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Time  string `json:"time"`
}

func (a Alert) Kind() Kind { return KindAlert }

func (a Alert) Severity() Severity { return Classify(a.label()) }

func (a Alert) label() string {
	if strings.TrimSpace(a.Type) == "" {
		return "INFO"
	}
	return a.Type
}

func (a Alert) View() View {
	t := a.Time
	if t == "" {
		t = "Just now"
	}
	return View{
		ID:       "alert-" + a.Title,
		Kind:     KindAlert,
		Type:     a.label(),
		Severity: a.Severity(),
		Color:    a.Severity().Color(),
		Title:    a.Title,
		Desc:     a.Desc,
		Time:     t,
		Source:   "System",
	}
}

// ScrapedEvent is a news or social event picked up by the upstream scraper.
type ScrapedEvent struct {
	Name          string   `json:"Name"`
	Impact        string   `json:"Impact"`
	Location      string   `json:"Location"`
	AffectedAreas []string `json:"AffectedAreas"`
	Time          string   `json:"Time"`
	Source        string   `json:"Source"`
}

func (e ScrapedEvent) Kind() Kind { return KindEvent }

func (e ScrapedEvent) Severity() Severity { return Classify(e.label()) }

func (e ScrapedEvent) label() string {
	if strings.TrimSpace(e.Impact) == "" {
		return "INFO"
	}
	return e.Impact
}

func (e ScrapedEvent) Description() string {
	desc := "Location: " + e.Location
	if len(e.AffectedAreas) > 0 {
		desc += " | Affected: " + strings.Join(e.AffectedAreas, ", ")
	}
	return desc
}

func (e ScrapedEvent) View() View {
	t := e.Time
	if t == "" {
		t = "Live"
	}
	src := e.Source
	if src == "" {
		src = "News"
	}
	return View{
		ID:       "event-" + e.Name,
		Kind:     KindEvent,
		Type:     e.label(),
		Severity: e.Severity(),
		Color:    e.Severity().Color(),
		Title:    e.Name,
		Desc:     e.Description(),
		Time:     t,
		Source:   src,
	}
}

// View is the flattened JSON form of a notification.
type View struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Color    string   `json:"color"`
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	Time     string   `json:"time"`
	Source   string   `json:"source"`
}

// Merge returns every alert followed by every event, preserving input order.
func Merge(alerts []Alert, events []ScrapedEvent) []Notification {
	out := make([]Notification, 0, len(alerts)+len(events))
	for _, a := range alerts {
		out = append(out, a)
	}
	for _, e := range events {
		out = append(out, e)
	}
	return out
}

// Summary counts notifications per severity bucket.
type Summary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Weather  int `json:"weather"`
	Success  int `json:"success"`
	Info     int `json:"info"`
}

func Summarize(list []Notification) Summary {
	var s Summary
	for _, n := range list {
		s.Total++
		switch n.Severity() {
		case SeverityCritical:
			s.Critical++
		case SeverityWarning:
			s.Warning++
		case SeverityWeather:
			s.Weather++
		case SeveritySuccess:
			s.Success++
		default:
			s.Info++
		}
	}
	return s
}

type Window string

const (
	WindowAll Window = "all"
	Window24h Window = "24h"
	Window7d  Window = "7d"
)

// ParseWindow accepts "", "all", "24h" and "7d".
func ParseWindow(s string) (Window, error) {
	switch Window(strings.ToLower(s)) {
	case "", WindowAll:
		return WindowAll, nil
	case Window24h:
		return Window24h, nil
	case Window7d:
		return Window7d, nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

func (w Window) span() time.Duration {
	switch w {
	case Window24h:
		return 24 * time.Hour
	case Window7d:
		return 7 * 24 * time.Hour
	}
	return 0
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04:05", "2006-01-02"}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func rawTime(n Notification) string {
	switch v := n.(type) {
	case Alert:
		return v.Time
	case ScrapedEvent:
		return v.Time
	}
	return ""
}

// FilterWindow keeps notifications no older than the window. Items whose
// time cannot be parsed are kept.
func FilterWindow(list []Notification, w Window, now time.Time) []Notification {
	span := w.span()
	if span == 0 {
		return list
	}
	out := make([]Notification, 0, len(list))
	for _, n := range list {
		t, ok := parseTime(rawTime(n))
		if !ok || now.Sub(t) <= span {
			out = append(out, n)
		}
	}
	return out
}

func Views(list []Notification) []View {
	out := make([]View, len(list))
	for i, n := range list {
		out[i] = n.View()
	}
	return out
}
