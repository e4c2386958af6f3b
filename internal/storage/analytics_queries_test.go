package storage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/meltforce/gigofit/internal/models"
)

// weekMs converts a UTC date to milliseconds, for placing sessions into
// specific strftime week buckets.
func weekMs(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).UnixMilli()
}

// TestWeeklyVolumeBuckets verifies completed-only bucketing, the DESC order,
// and the limit.
func TestWeeklyVolumeBuckets(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")

	// Mondays of three consecutive weeks.
	week1 := weekMs(2025, time.March, 3)
	week2 := weekMs(2025, time.March, 10)
	week3 := weekMs(2025, time.March, 17)

	s1 := insertSession(t, d, week1, week1+3600000, models.VibeNormal, 0)
	s2 := insertSession(t, d, week2, week2+3600000, models.VibeNormal, 0)
	s3 := insertSession(t, d, week3, week3+3600000, models.VibeNormal, 0)
	active := insertSession(t, d, week3, 0, models.VibeNormal, 0)

	insertSet(t, d, s1, bench, 100, 10, week1) // 1000
	insertSet(t, d, s2, bench, 100, 20, week2) // 2000
	insertSet(t, d, s3, bench, 100, 30, week3) // 3000
	insertSet(t, d, active, bench, 999, 10, week3)

	points, err := d.WeeklyVolume(ctx, 2)
	if err != nil {
		t.Fatalf("WeeklyVolume error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	// Newest bucket first; the active session's set never counts.
	if points[0].TotalVolume != 3000 {
		t.Errorf("points[0] volume = %v, want 3000", points[0].TotalVolume)
	}
	if points[1].TotalVolume != 2000 {
		t.Errorf("points[1] volume = %v, want 2000", points[1].TotalVolume)
	}
	if points[0].Bucket <= points[1].Bucket {
		t.Errorf("bucket order = [%q, %q], want descending", points[0].Bucket, points[1].Bucket)
	}
}

func TestMonthlyVolumeBuckets(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")

	jan := weekMs(2025, time.January, 15)
	feb := weekMs(2025, time.February, 15)

	s1 := insertSession(t, d, jan, jan+3600000, models.VibeNormal, 0)
	s2 := insertSession(t, d, feb, feb+3600000, models.VibeNormal, 0)
	insertSet(t, d, s1, bench, 50, 10, jan)
	insertSet(t, d, s2, bench, 60, 10, feb)

	points, err := d.MonthlyVolume(ctx, 12)
	if err != nil {
		t.Fatalf("MonthlyVolume error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].Bucket != "2025-02" || points[0].TotalVolume != 600 {
		t.Errorf("points[0] = %+v, want 2025-02 / 600", points[0])
	}
	if points[1].Bucket != "2025-01" || points[1].TotalVolume != 500 {
		t.Errorf("points[1] = %+v, want 2025-01 / 500", points[1])
	}
}

// TestExerciseWeeklyMax verifies ascending weeks and the per-week MAX.
func TestExerciseWeeklyMax(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")
	squat := exerciseID(t, d, "Barbell Squat")

	week1 := weekMs(2025, time.March, 3)
	week2 := weekMs(2025, time.March, 10)

	s1 := insertSession(t, d, week1, week1+3600000, models.VibeNormal, 0)
	s2 := insertSession(t, d, week2, week2+3600000, models.VibeNormal, 0)

	insertSet(t, d, s1, bench, 80, 8, week1)
	insertSet(t, d, s1, bench, 85, 5, week1)
	insertSet(t, d, s2, bench, 90, 3, week2)
	insertSet(t, d, s2, squat, 140, 5, week2) // other exercise, excluded

	points, err := d.ExerciseWeeklyMax(ctx, bench)
	if err != nil {
		t.Fatalf("ExerciseWeeklyMax error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].MaxWeight != 85 || points[1].MaxWeight != 90 {
		t.Errorf("maxes = [%v, %v], want [85, 90]", points[0].MaxWeight, points[1].MaxWeight)
	}
	if points[0].Week >= points[1].Week {
		t.Errorf("week order = [%q, %q], want ascending", points[0].Week, points[1].Week)
	}
}

// TestExerciseWeeklyMaxIncludesInProgress verifies that sets from a session
// still in progress count toward the weekly charts. Unlike the volume
// buckets, the per-exercise progression has no completed-session filter.
func TestExerciseWeeklyMaxIncludesInProgress(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")

	week1 := weekMs(2025, time.March, 3)
	week2 := weekMs(2025, time.March, 10)

	done := insertSession(t, d, week1, week1+3600000, models.VibeNormal, 0)
	active := insertSession(t, d, week2, 0, models.VibeNormal, 0)

	insertSet(t, d, done, bench, 80, 5, week1)
	insertSet(t, d, active, bench, 95, 3, week2)

	points, err := d.ExerciseWeeklyMax(ctx, bench)
	if err != nil {
		t.Fatalf("ExerciseWeeklyMax error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[1].MaxWeight != 95 {
		t.Errorf("in-progress week max = %v, want 95", points[1].MaxWeight)
	}

	rmPoints, err := d.ExerciseWeekly1RM(ctx, bench)
	if err != nil {
		t.Fatalf("ExerciseWeekly1RM error: %v", err)
	}
	if len(rmPoints) != 2 {
		t.Fatalf("1rm points = %d, want 2", len(rmPoints))
	}
}

// TestExerciseWeekly1RM verifies the Epley estimate with float rep division.
func TestExerciseWeekly1RM(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")

	week1 := weekMs(2025, time.March, 3)
	s1 := insertSession(t, d, week1, week1+3600000, models.VibeNormal, 0)
	insertSet(t, d, s1, bench, 100, 10, week1)

	points, err := d.ExerciseWeekly1RM(ctx, bench)
	if err != nil {
		t.Fatalf("ExerciseWeekly1RM error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("points = %d, want 1", len(points))
	}
	// 100 * (1 + 10/30) = 133.33...
	if math.Abs(points[0].MaxEstimated1RM-133.3333) > 0.001 {
		t.Errorf("1rm = %v, want ~133.333", points[0].MaxEstimated1RM)
	}
}

// TestHistoricalMaxes verifies the self-exclusion and the completed-only
// filter.
func TestHistoricalMaxes(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")

	past := insertSession(t, d, 1000, 2000, models.VibeNormal, 0)
	current := insertSession(t, d, 5000, 6000, models.VibeNormal, 0)
	active := insertSession(t, d, 7000, 0, models.VibeNormal, 0)

	insertSet(t, d, past, bench, 70, 10, 1500)  // volume 700, 1rm ~93.3
	insertSet(t, d, current, bench, 120, 1, 5500)
	insertSet(t, d, active, bench, 200, 10, 7500)

	maxes, err := d.HistoricalMaxes(ctx, []int64{bench}, current)
	if err != nil {
		t.Fatalf("HistoricalMaxes error: %v", err)
	}
	if len(maxes) != 1 {
		t.Fatalf("maxes = %d, want 1", len(maxes))
	}
	m := maxes[0]
	if !m.MaxWeight.Valid || m.MaxWeight.Float64 != 70 {
		t.Errorf("max weight = %+v, want 70 (current and active sessions excluded)", m.MaxWeight)
	}
	if !m.MaxVolume.Valid || m.MaxVolume.Float64 != 700 {
		t.Errorf("max volume = %+v, want 700", m.MaxVolume)
	}

	none, err := d.HistoricalMaxes(ctx, nil, current)
	if err != nil {
		t.Fatalf("HistoricalMaxes(nil) error: %v", err)
	}
	if none != nil {
		t.Errorf("maxes for no exercises = %+v, want nil", none)
	}
}

func TestPersonalRecordsQuery(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")
	row := exerciseID(t, d, "Barbell Row")

	s1 := insertSession(t, d, 1000, 2000, models.VibeNormal, 0)
	insertSet(t, d, s1, bench, 100, 5, 1500)
	insertSet(t, d, s1, bench, 105, 2, 1600)
	insertSet(t, d, s1, row, 80, 8, 1700)

	records, err := d.PersonalRecords(ctx)
	if err != nil {
		t.Fatalf("PersonalRecords error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	// back sorts before chest.
	if records[0].ExerciseName != "Barbell Row" || records[0].MaxWeight != 80 {
		t.Errorf("records[0] = %+v, want Barbell Row / 80", records[0])
	}
	if records[1].ExerciseName != "Bench Press" || records[1].MaxWeight != 105 {
		t.Errorf("records[1] = %+v, want Bench Press / 105", records[1])
	}
}

// TestPreviousSessionVolume verifies the OFFSET 1 ranking over sessions that
// actually logged sets.
func TestPreviousSessionVolume(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	bench := exerciseID(t, d, "Bench Press")

	volume, err := d.PreviousSessionVolume(ctx)
	if err != nil {
		t.Fatalf("PreviousSessionVolume error: %v", err)
	}
	if volume != nil {
		t.Fatalf("previous volume with no sessions = %v, want nil", *volume)
	}

	// One completed session with sets: still no "previous".
	s1 := insertSession(t, d, 1000, 2000, models.VibeNormal, 0)
	insertSet(t, d, s1, bench, 100, 10, 1500)
	volume, err = d.PreviousSessionVolume(ctx)
	if err != nil {
		t.Fatalf("PreviousSessionVolume error: %v", err)
	}
	if volume != nil {
		t.Fatalf("previous volume with one session = %v, want nil", *volume)
	}

	// A set-less completed session must not occupy a ranking slot.
	insertSession(t, d, 3000, 4000, models.VibeNormal, 0)

	s3 := insertSession(t, d, 5000, 6000, models.VibeNormal, 0)
	insertSet(t, d, s3, bench, 120, 5, 5500)

	volume, err = d.PreviousSessionVolume(ctx)
	if err != nil {
		t.Fatalf("PreviousSessionVolume error: %v", err)
	}
	if volume == nil {
		t.Fatal("previous volume = nil, want 1000")
	}
	if *volume != 1000 {
		t.Errorf("previous volume = %v, want 1000 (session s1)", *volume)
	}
}

func TestCompletedSessionIDsBetween(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)

	a := insertSession(t, d, 1000, 2000, models.VibeNormal, 0)
	b := insertSession(t, d, 3000, 4000, models.VibeNormal, 0)
	insertSession(t, d, 5000, 0, models.VibeNormal, 0)  // active
	insertSession(t, d, 9000, 9500, models.VibeNormal, 0) // outside window

	ids, err := d.CompletedSessionIDsBetween(ctx, 0, 5000)
	if err != nil {
		t.Fatalf("CompletedSessionIDsBetween error: %v", err)
	}
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("ids = %v, want [%d, %d]", ids, a, b)
	}
}
