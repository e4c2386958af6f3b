package mcp

import (
	"testing"
	"time"

	"github.com/meltforce/gigofit/internal/format"
	"github.com/meltforce/gigofit/internal/models"
	"github.com/meltforce/gigofit/internal/storage"
)

func TestParseFlexTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-10T14:30:00Z", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)},
		{"2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"2025-03", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseFlexTime(tt.in)
		if err != nil {
			t.Fatalf("parseFlexTime(%q) error: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseFlexTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLabelHistory(t *testing.T) {
	start := time.Date(2025, 3, 10, 6, 30, 0, 0, time.Local).UnixMilli()
	entries := labelHistory([]models.HistorySession{
		{ID: 1, StartTime: start, Vibe: models.VibeCrushing, DurationMinutes: 45},
	})
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.VibeLabel != "Crushing It" {
		t.Errorf("vibe label = %q, want %q", got.VibeLabel, "Crushing It")
	}
	if got.Duration != "00:45:00" {
		t.Errorf("duration = %q, want 00:45:00", got.Duration)
	}
	if got.DayPart != "Morning Lift" {
		t.Errorf("day part = %q, want Morning Lift", got.DayPart)
	}
}

func TestLabelTrend(t *testing.T) {
	points := labelTrend([]storage.VolumePoint{
		{Bucket: "2025-02", TotalVolume: 1200},
	}, format.FormatMonthLabel)
	if len(points) != 1 {
		t.Fatalf("len(points) = %d, want 1", len(points))
	}
	if points[0].Label != "Feb 2025" {
		t.Errorf("label = %q, want Feb 2025", points[0].Label)
	}
	if points[0].TotalVolume != 1200 {
		t.Errorf("volume = %v, want 1200", points[0].TotalVolume)
	}
}

func TestParseFlexTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "03/10/2025"} {
		if _, err := parseFlexTime(in); err == nil {
			t.Errorf("parseFlexTime(%q) expected an error", in)
		}
	}
}
