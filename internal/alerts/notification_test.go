package alerts

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  Severity
	}{
		{"CRITICAL", SeverityCritical},
		{"critical", SeverityCritical},
		{"High", SeverityCritical},
		{"WARNING", SeverityWarning},
		{"medium", SeverityWarning},
		{"WEATHER", SeverityWeather},
		{"SUCCESS", SeveritySuccess},
		{"INFO", SeverityInfo},
		{"low", SeverityInfo},
		{"", SeverityInfo},
		{"something else", SeverityInfo},
	}
	for _, tt := range tests {
		if got := Classify(tt.label); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestSeverityColor(t *testing.T) {
	if SeverityCritical.Color() != "red" || SeverityInfo.Color() != "gray" {
		t.Errorf("unexpected colours: %s %s", SeverityCritical.Color(), SeverityInfo.Color())
	}
}

func TestMergePutsAlertsFirst(t *testing.T) {
	list := Merge(
		[]Alert{{Title: "a1"}, {Title: "a2"}},
		[]ScrapedEvent{{Name: "e1"}},
	)
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []Kind{KindAlert, KindAlert, KindEvent} {
		if list[i].Kind() != want {
			t.Errorf("list[%d].Kind() = %s, want %s", i, list[i].Kind(), want)
		}
	}
}

func TestAlertDefaults(t *testing.T) {
	v := Alert{Title: "Signal failure"}.View()
	if v.Type != "INFO" || v.Time != "Just now" || v.Source != "System" || v.ID != "alert-Signal failure" {
		t.Errorf("alert view = %+v", v)
	}
}

func TestEventView(t *testing.T) {
	e := ScrapedEvent{Name: "Marathon", Impact: "High", Location: "Marine Drive", AffectedAreas: []string{"Colaba", "Churchgate"}}
	v := e.View()
	if v.Desc != "Location: Marine Drive | Affected: Colaba, Churchgate" {
		t.Errorf("Desc = %q", v.Desc)
	}
	if v.Time != "Live" || v.Source != "News" || v.Severity != SeverityCritical {
		t.Errorf("event view = %+v", v)
	}

	bare := ScrapedEvent{Name: "Rally", Location: "Azad Maidan"}.View()
	if bare.Desc != "Location: Azad Maidan" || bare.Type != "INFO" {
		t.Errorf("bare event view = %+v", bare)
	}
}

func TestSummarize(t *testing.T) {
	list := Merge(
		[]Alert{{Type: "CRITICAL"}, {Type: "weather"}, {}},
		[]ScrapedEvent{{Impact: "Medium"}, {Impact: "High"}},
	)
	got := Summarize(list)
	want := Summary{Total: 5, Critical: 2, Warning: 1, Weather: 1, Info: 1}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestFilterWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	list := Merge(
		[]Alert{
			{Title: "fresh", Time: now.Add(-2 * time.Hour).Format(time.RFC3339)},
			{Title: "old", Time: now.Add(-72 * time.Hour).Format(time.RFC3339)},
			{Title: "unparsable", Time: "Just now"},
		},
		[]ScrapedEvent{
			{Name: "last week", Time: "2026-03-05 09:30"},
			{Name: "ancient", Time: "2026-01-01 09:30"},
		},
	)

	titles := func(ns []Notification) []string {
		var out []string
		for _, n := range ns {
			out = append(out, n.View().Title)
		}
		return out
	}

	tests := []struct {
		window Window
		want   []string
	}{
		{WindowAll, []string{"fresh", "old", "unparsable", "last week", "ancient"}},
		{Window24h, []string{"fresh", "unparsable"}},
		{Window7d, []string{"fresh", "old", "unparsable", "last week"}},
	}
	for _, tt := range tests {
		got := titles(FilterWindow(list, tt.window, now))
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.window, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.window, got, tt.want)
				break
			}
		}
	}
}

func TestParseWindow(t *testing.T) {
	for in, want := range map[string]Window{"": WindowAll, "all": WindowAll, "24H": Window24h, "7d": Window7d} {
		got, err := ParseWindow(in)
		if err != nil || got != want {
			t.Errorf("ParseWindow(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseWindow("month"); err == nil {
		t.Error("expected error for unknown window")
	}
}
