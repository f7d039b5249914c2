package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestToSystemLogMapsKnownAttrs(t *testing.T) {
	rec := slog.NewRecord(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), slog.LevelError, "poll failed", 0)
	rec.AddAttrs(
		slog.String("user_id", "uid-1"),
		slog.String("report_id", "r-1"),
		slog.String("city", "Mumbai"),
		slog.Any("error", errors.New("timeout")),
		slog.Float64("latency_ms", 12.6),
		slog.String("resource", "predict"),
	)

	entry := toSystemLog(rec, []slog.Attr{slog.String("component", "poller")})
	if entry.Component != "poller" || entry.City != "Mumbai" || entry.Error != "timeout" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.UserID == nil || *entry.UserID != "uid-1" || entry.ReportID == nil || *entry.ReportID != "r-1" {
		t.Errorf("ids = %v %v", entry.UserID, entry.ReportID)
	}
	if entry.LatencyMs != 13 {
		t.Errorf("LatencyMs = %d", entry.LatencyMs)
	}
	var extra map[string]any
	if err := json.Unmarshal(entry.Extra, &extra); err != nil || extra["resource"] != "predict" {
		t.Errorf("extra = %s (%v)", entry.Extra, err)
	}
}

func TestPGHandlerEnabled(t *testing.T) {
	h := &PGHandler{}
	if h.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should not be persisted")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be persisted")
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var info, errs bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h).With("component", "test")

	log.Info("hello")
	log.Error("boom")

	if bytes.Count(info.Bytes(), []byte("\n")) != 2 {
		t.Errorf("info handler got %q", info.String())
	}
	if bytes.Count(errs.Bytes(), []byte("\n")) != 1 || !bytes.Contains(errs.Bytes(), []byte(`"component":"test"`)) {
		t.Errorf("error handler got %q", errs.String())
	}
}
